package project

import "errors"

var (
	ErrMissingProjectDirectory = errors.New("project directory not specified")
	ErrInvalidProjectName      = errors.New("invalid project name")
	ErrDirectoryConflict       = errors.New("directory contains conflicting files")
	ErrUnknownTemplate         = errors.New("unknown template")
	ErrInstallFailed           = errors.New("installing dependencies failed")
)

// ReportedError marks an error whose message has already been shown to the user.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err, or an error it wraps, is a ReportedError.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

func reported(err error) error {
	return &ReportedError{Err: err}
}
