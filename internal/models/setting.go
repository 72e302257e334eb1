package models

import "time"

// SettingKeyLogo is the only settings entry currently in use; the value is a
// data-URI encoded image.
const SettingKeyLogo = "logo"

// Setting is a single key/value entry with upsert semantics.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
