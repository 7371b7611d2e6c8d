package clock

import "time"

// Clock abstracts "now" so payslip generation and withdrawal budget
// resolution stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func System() Clock { return systemClock{} }
