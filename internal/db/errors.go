package db

import "errors"

var (
	// ErrNotExist is returned by a Backend when a collection has never been written.
	ErrNotExist = errors.New("collection does not exist")

	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptStore       = errors.New("corrupt store")
)
