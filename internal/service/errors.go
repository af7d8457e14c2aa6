package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNotLoaded    = errors.New("tables not loaded")
	ErrInvalidInput = errors.New("invalid input")
)
