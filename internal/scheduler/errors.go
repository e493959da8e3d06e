// Package scheduler runs a periodic dispatch task on a fixed interval.
package scheduler

import "errors"

var (
	ErrAlreadyRunning = errors.New("scheduler is already running")
	ErrNotRunning     = errors.New("scheduler is not running")
)
