package dbbadger

import "errors"

var (
	// ErrPoolAlreadyExists ...
	ErrPoolAlreadyExists = errors.New("pool already exists")
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool not found")
)
