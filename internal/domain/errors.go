package domain

import "errors"

// Error kinds returned by the migration pipeline. Wrapped errors keep the
// kind, so callers match with errors.Is.
var (
	ErrBackupFailed          = errors.New("failed to backup Anchor.toml")
	ErrReadFailed            = errors.New("failed to read Anchor.toml")
	ErrTomlParse             = errors.New("failed to parse Anchor.toml")
	ErrWriteFailed           = errors.New("failed to write Anchor.toml")
	ErrBackupNotFound        = errors.New("backup file not found")
	ErrRestoreFailed         = errors.New("failed to restore from backup")
	ErrNotAnchorProject      = errors.New("not a valid Anchor project")
	ErrOracleDetectionFailed = errors.New("oracle detection failed")
)
