package model

import "errors"

var (
	ErrGuestNotFound = errors.New("guest not found")
)
