package utils

import (
	"execdash/pkg/constants"
	"github.com/araddon/dateparse"
	"sync"
	"time"
)

// DisplayTime converts API timestamps into the dashboard's display location
type DisplayTime struct {
	mtx sync.RWMutex
	loc *time.Location
}

func NewDisplayTime(tz string) (*DisplayTime, error) {
	displayTime := &DisplayTime{}
	if err := displayTime.SetTimezone(tz); err != nil {
		return nil, err
	}
	return displayTime, nil
}

// SetTimezone an empty tz falls back to the process local time
func (displayTime *DisplayTime) SetTimezone(tz string) error {
	displayTime.mtx.Lock()
	defer displayTime.mtx.Unlock()

	if tz == "" {
		displayTime.loc = nil
		return nil
	}

	location, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}
	displayTime.loc = location
	return nil
}

func (displayTime *DisplayTime) GetTime(t time.Time) time.Time {
	displayTime.mtx.RLock()
	defer displayTime.mtx.RUnlock()

	if displayTime.loc == nil {
		return t.Local()
	}
	return t.In(displayTime.loc)
}

// Parse reads an ISO 8601 timestamp, including offsets without a colon such as +0000
func (displayTime *DisplayTime) Parse(value string) (time.Time, error) {
	return dateparse.ParseAny(value)
}

// Format renders value as MM-DD-YYYY hh:mm:ss A, the placeholder when it is empty or unparsable
func (displayTime *DisplayTime) Format(value string) string {
	if value == "" {
		return constants.MissingValuePlaceholder
	}

	t, err := displayTime.Parse(value)
	if err != nil {
		return constants.MissingValuePlaceholder
	}

	return displayTime.GetTime(t).Format(constants.DisplayTimeLayout)
}
