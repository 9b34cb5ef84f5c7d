package db

// Setting keys.
const (
	SettingDefaultRoleID = "default_role_id"
	// SettingScanRevision is bumped by triggers on every scans row change.
	SettingScanRevision = "scan_revision"
)

// GetSetting returns a stored setting, or fallback when it is not set.
func (d *DB) GetSetting(key, fallback string) string {
	var v string
	err := d.sql.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return fallback
	}
	return v
}

// SetSetting stores a setting, replacing any previous value.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.sql.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}
