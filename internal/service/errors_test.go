package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

func TestStoreErrorClassification(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, status: appErrors.ErrStoreUnavailable.Status},
		{name: "canceled", err: context.Canceled, status: appErrors.ErrStoreUnavailable.Status},
		{name: "bad conn", err: driver.ErrBadConn, status: appErrors.ErrStoreUnavailable.Status},
		{name: "conn done", err: sql.ErrConnDone, status: appErrors.ErrStoreUnavailable.Status},
		{name: "connection refused", err: refused, status: appErrors.ErrStoreUnavailable.Status},
		{name: "wrapped dial failure", err: fmt.Errorf("list applications: %w", refused), status: appErrors.ErrStoreUnavailable.Status},
		{name: "constraint violation stays internal", err: assert.AnError, status: appErrors.ErrInternal.Status},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := appErrors.FromError(storeError(tc.err, "boom"))
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, "boom", appErr.Message)
		})
	}
}

func TestListDialFailureBecomesStoreUnavailable(t *testing.T) {
	repo := &applicationRepoStub{
		listErr: fmt.Errorf("list applications: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}),
	}
	svc := NewApplicationService(repo, 0, nil)

	_, err := svc.List(context.Background())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Status, appErr.Status)
}
