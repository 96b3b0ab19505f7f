package queue

import "errors"

// Sentinel errors returned by Submit.
var (
	ErrQueueClosed = errors.New("queue closed")
	ErrQueueFull   = errors.New("queue full")
)
