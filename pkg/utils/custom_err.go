package utils

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrArchiveDisabled  = errors.New("plan archive disabled")
	ErrDatabaseError    = errors.New("database error")
	ErrPlanningFailed   = errors.New("planning failed")
	ErrProviderResponse = errors.New("unexpected provider response")
)
