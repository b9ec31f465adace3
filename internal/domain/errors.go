package domain

import "errors"

// Виды ошибок предметной области
// Ошибки пакетов оборачивают их, поэтому проверять можно как конкретную ошибку, так и вид
var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidInput             = errors.New("invalid input")
	ErrInvalidWindow            = errors.New("invalid time window")
	ErrCancellationWindowClosed = errors.New("cancellation window closed")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrSpaceUnavailable         = errors.New("space unavailable for the requested window")
	ErrAccessDenied             = errors.New("access denied")
)
