package whisperwall

import "errors"

var (
	ErrBadConfig   = errors.New("bad config")
	ErrExists      = errors.New("already exists")
	ErrMissingData = errors.New("missing data")
	ErrNotExist    = errors.New("not exist")
	ErrNotFound    = errors.New("not found")
	ErrNotValid    = errors.New("invalid")
	ErrUnexpected  = errors.New("unexpected")
)
