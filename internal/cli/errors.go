package cli

import "errors"

var (
	ErrDoctorIssuesFound = errors.New("doctor found integrity errors")

	errBackupNeedsJSON = errors.New("backup requires the json backend")
)
