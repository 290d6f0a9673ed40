package models

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("expired token")
	ErrNotChef      = errors.New("not a chef")
)
