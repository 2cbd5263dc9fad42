package schedule

import (
	"bytes"
	"strconv"
)

// WeeklyDocument is the decoded weekly schedule payload for one location.
type WeeklyDocument struct {
	Programs []Program `json:"programs"`
}

// Program groups per-day schedule blocks under a program name such as
// "Swim - Drop-In".
type Program struct {
	Name string     `json:"program"`
	Days []DayBlock `json:"days"`
}

// DayBlock is one program variant ("Lane Swim: Long Course (50m)", ...)
// with its time slots for the week.
type DayBlock struct {
	Title  string     `json:"title"`
	Status string     `json:"status"`
	Times  []TimeSlot `json:"times"`
}

// TimeSlot is a single scheduled entry. Title encodes the time range as
// "<start> - <end>" in 12-hour clock notation.
type TimeSlot struct {
	Day    string  `json:"day"`
	Title  string  `json:"title"`
	Status string  `json:"status"`
	ID     FlexInt `json:"id"`
}

// FlexInt accepts a JSON number or a numeric string; anything else decodes
// to 0. The upstream service is inconsistent about quoting ids.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}
