package application

import "time"

// Clock interface supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Elapsed returns how much time passed on c since start.
func Elapsed(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
