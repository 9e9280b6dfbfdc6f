package allocation

import "time"

// Clock abstracts wall-clock reads so that hold expiry can be tested
// deterministically.  Production code uses SystemClock; tests supply
// a manual implementation and advance it instead of sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by time.Now in UTC.
func SystemClock() Clock { return systemClock{} }
