package snapshot

import "time"

// TimeLayout is the naive local timestamp format used throughout the
// snapshot: the publishing authority's wall clock, no timezone marker.
const TimeLayout = "2006-01-02T15:04:05"

// Facility is one recreation location as published by the municipal
// directory, enriched with its normalized sessions during a refresh cycle.
// Field names mirror the upstream attribute payload so a persisted snapshot
// round-trips byte-for-byte with what the directory returns.
type Facility struct {
	ObjectID       int64   `json:"objectid"`
	LocationID     int64   `json:"locationid"`
	ComplexName    string  `json:"complexname"`
	LocationType   string  `json:"location_type"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Address        string  `json:"address"`
	Website        string  `json:"website"`
	ShowOnMap      string  `json:"show_on_map"`
	ActivityType   string  `json:"activity_type"`
	GlobalID       string  `json:"globalid"`
	Amenities      string  `json:"amenities"`
	CreatedDate    int64   `json:"created_date"`
	CreatedUser    string  `json:"created_user"`
	LastEditedDate int64   `json:"last_edited_date"`
	LastEditedUser string  `json:"last_edited_user"`

	Sessions []Session `json:"swim_data,omitempty"`
}

// Session is one normalized lane-swim interval. Start and end are nil when
// the upstream slot title carried no parseable time range; such sessions are
// still persisted.
type Session struct {
	Status     string  `json:"status"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	ID         int     `json:"id"`
	PoolLength string  `json:"pool_length,omitempty"`
}

// ParseTimestamp parses a snapshot timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// FormatTimestamp renders t in the snapshot timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimeLayout)
}
