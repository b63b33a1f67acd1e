package domain

import (
	"errors"
)

const (
	RoleUser = "user"
)

var (
	MessageFailedBodyRequest = "failed to parse request body"
	MessageFailedGetToken    = "failed to get token"

	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)
