package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

// storeError classifies repository failures: connectivity and timeout
// problems become 503 so clients can back off; everything else is a 500.
// Dial failures against a down database surface as net errors, so those
// count as connectivity too.
func storeError(err error, message string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.As(err, &netErr) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
