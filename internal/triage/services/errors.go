package services

import "errors"

var (
	ErrInvalidClinic = errors.New("invalid clinic")
	ErrQueueFull     = errors.New("priority queue is full")
	ErrAllEmpty      = errors.New("no patients waiting")
	ErrNothingToSkip = errors.New("no patients to skip")
	ErrNotFound      = errors.New("patient not found or already treated")
)
