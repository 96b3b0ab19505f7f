package service

import "errors"

// Sentinel errors returned by the chart service.
var (
	ErrEmptyChart = errors.New("no zones in common with the baseline")
	ErrNoJobs     = errors.New("no chart jobs")
)
