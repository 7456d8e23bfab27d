package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrExporterNotFound = errors.New("note exporter not found")
)
