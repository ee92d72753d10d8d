package srv

import (
	"time"

	"github.com/jypelle/vekimeteo/internal/face"
	"github.com/sirupsen/logrus"
)

// ClockSource samples the wall clock in the active time zone.
type ClockSource struct {
	now        func() time.Time
	zoneLoader func() (*time.Location, error)
	location   *time.Location
}

func NewClockSource(zoneLoader func() (*time.Location, error)) *ClockSource {
	clockSource := &ClockSource{
		now:        time.Now,
		zoneLoader: zoneLoader,
		location:   time.Local,
	}
	clockSource.Reset()
	return clockSource
}

// Reset reloads the system time zone. The previous zone is kept when it
// cannot be read.
func (c *ClockSource) Reset() {
	location, err := c.zoneLoader()
	if err != nil {
		logrus.Warnf("Unable to load system time zone, keep %s: %v", c.location, err)
		return
	}
	if location.String() != c.location.String() {
		logrus.Infof("Time zone set to %s", location)
	}
	c.location = location
}

func (c *ClockSource) SetZone(name string) error {
	location, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	logrus.Infof("Time zone set to %s", location)
	c.location = location
	return nil
}

func (c *ClockSource) Location() *time.Location {
	return c.location
}

func (c *ClockSource) Now() time.Time {
	return c.now().In(c.location)
}

func (c *ClockSource) Reading() face.ClockReading {
	return face.ReadClock(c.Now())
}
