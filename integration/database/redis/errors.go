package redis

import "errors"

var (
	ErrMissingURL = errors.New("redis: connection url is empty")
	ErrParseURL   = errors.New("redis: invalid connection url")
	ErrNotReady   = errors.New("redis: no ping reply within retry budget")
	ErrUnhealthy  = errors.New("redis: healthcheck ping failed")
	ErrCommand    = errors.New("redis: command failed")
)
