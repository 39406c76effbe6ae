package validation

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrDegenerateImage   = errors.New("image has no pixels to crop")
	ErrEmptyFilename     = errors.New("empty input filename")
)
