package clock

import (
	"fmt"
	"time"
)

// Clock produces timestamps pinned to one timezone so services never read
// ambient process-local time. Every timestamp the service persists flows
// through an injected Clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type zoned struct {
	loc *time.Location
}

// NewInZone builds a Clock anchored to the named IANA timezone.
func NewInZone(name string) (Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return &zoned{loc: loc}, nil
}

func (c *zoned) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *zoned) Location() *time.Location {
	return c.loc
}

// Fixed returns a Clock that always reports the given instant. Test helper.
func Fixed(at time.Time) Clock {
	return &fixed{at: at}
}

type fixed struct {
	at time.Time
}

func (c *fixed) Now() time.Time {
	return c.at
}

func (c *fixed) Location() *time.Location {
	return c.at.Location()
}
