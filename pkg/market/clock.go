package market

import "time"

// Clock abstracts time so trailing windows can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
