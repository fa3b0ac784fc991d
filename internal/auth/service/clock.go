package service

import "time"

// Clock supplies the current time. Every expiry decision in this package
// goes through one so tests can move time instead of sleeping.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
