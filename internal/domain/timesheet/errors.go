package timesheet

import "errors"

var (
	// ErrSchema means the file had fewer than the five required columns and
	// neither named nor positional mapping could apply. File-scoped, aborts
	// that file's ingestion.
	ErrSchema = errors.New("file does not have the required columns")

	// ErrUnsupportedFile means the upload is neither .csv nor .xlsx.
	ErrUnsupportedFile = errors.New("unsupported file extension")

	// ErrEmptyFile means the file had no header row at all.
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidRequest means the upload request itself is malformed.
	ErrInvalidRequest = errors.New("invalid upload request")
)
