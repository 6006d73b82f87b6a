package dockerfile

import "errors"

var (
	ErrNoBase        = errors.New("no image source has been found, please define 'base:'")
	ErrMultipleBases = errors.New("'base:' found in multiple files")
	ErrUnknownBase   = errors.New("invalid base")
)
