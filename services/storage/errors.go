package storage

import "errors"

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrEmptyFile       = errors.New("empty file")
)
