package snapshot

import "time"

// Query returns the facilities that have at least one session satisfying
// both bounds: start at or after lower (when given) and end at or before
// upper (when given). A facility appears at most once, deduplicated by
// location id with keep-first semantics. A session missing a timestamp
// fails any bound that needs it.
func Query(facilities []Facility, lower, upper *time.Time) []Facility {
	matched := make([]Facility, 0)
	seen := map[int64]bool{}
	for _, f := range facilities {
		if seen[f.LocationID] {
			continue
		}
		for _, sess := range f.Sessions {
			if sessionWithinBounds(sess, lower, upper) {
				matched = append(matched, f)
				seen[f.LocationID] = true
				break
			}
		}
	}
	return matched
}

func sessionWithinBounds(sess Session, lower, upper *time.Time) bool {
	if lower != nil {
		start, ok := parseOptional(sess.StartTime)
		if !ok || start.Before(*lower) {
			return false
		}
	}
	if upper != nil {
		end, ok := parseOptional(sess.EndTime)
		if !ok || end.After(*upper) {
			return false
		}
	}
	return true
}

// SimplifiedFacility is the reduced projection returned when the query asks
// for the simple shape.
type SimplifiedFacility struct {
	PoolName  string           `json:"pool_name"`
	Website   string           `json:"website"`
	Address   string           `json:"address"`
	Longitude float64          `json:"x"`
	Latitude  float64          `json:"y"`
	Times     []SimplifiedTime `json:"times"`
}

// SimplifiedTime is one session in the simplified projection.
type SimplifiedTime struct {
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	PoolLength string  `json:"pool_length,omitempty"`
}

// Simplify reshapes facilities to the simplified projection. Unlike the
// facility-inclusion filter in Query, the per-facility session list here
// keeps sessions that overlap the window: end at or after lower and start
// at or before upper.
func Simplify(facilities []Facility, lower, upper *time.Time) []SimplifiedFacility {
	out := make([]SimplifiedFacility, 0, len(facilities))
	for _, f := range facilities {
		sf := SimplifiedFacility{
			PoolName:  f.ComplexName,
			Website:   f.Website,
			Address:   f.Address,
			Longitude: f.X,
			Latitude:  f.Y,
			Times:     make([]SimplifiedTime, 0, len(f.Sessions)),
		}
		for _, sess := range f.Sessions {
			if !sessionOverlapsWindow(sess, lower, upper) {
				continue
			}
			sf.Times = append(sf.Times, SimplifiedTime{
				StartTime:  sess.StartTime,
				EndTime:    sess.EndTime,
				PoolLength: sess.PoolLength,
			})
		}
		out = append(out, sf)
	}
	return out
}

func sessionOverlapsWindow(sess Session, lower, upper *time.Time) bool {
	if lower != nil {
		end, ok := parseOptional(sess.EndTime)
		if !ok || end.Before(*lower) {
			return false
		}
	}
	if upper != nil {
		start, ok := parseOptional(sess.StartTime)
		if !ok || start.After(*upper) {
			return false
		}
	}
	return true
}

func parseOptional(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(*s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
