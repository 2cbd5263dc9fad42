package schedule

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

// dropInProgram is the only program name that contributes sessions.
const dropInProgram = "Swim - Drop-In"

// laneSwimTitles are the block titles that qualify as lane swim.
var laneSwimTitles = map[string]bool{
	"Lane Swim":                     true,
	"Lane Swim: Long Course (50m)":  true,
	"Lane Swim: Short Course (25m)": true,
}

// dayOffsets maps lowercased day names to offsets from Monday. An
// unrecognized or absent day name falls through to 0, i.e. Monday. That
// default comes from the publishing service's own data quirks and is kept
// as-is.
var dayOffsets = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

const slotTimeLayout = "3:04 PM"

// Normalizer turns weekly documents into absolute-time session records.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a normalizer.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger.With().Str("component", "normalizer").Logger()}
}

// Normalize extracts the active drop-in lane-swim sessions from doc and
// anchors them to absolute dates: the Monday of the week containing now,
// advanced by weekOffset whole weeks, then by the slot's day-of-week
// offset. Output order follows the document.
func (n *Normalizer) Normalize(doc *WeeklyDocument, weekOffset int, now time.Time) []snapshot.Session {
	var program *Program
	matches := 0
	for i := range doc.Programs {
		if doc.Programs[i].Name == dropInProgram {
			matches++
			if program == nil {
				program = &doc.Programs[i]
			}
		}
	}
	if program == nil {
		return nil
	}
	if matches > 1 {
		n.logger.Warn().Int("count", matches).Msg("multiple drop-in swim programs, using the first")
	}

	weekStart := startOfWeek(now).AddDate(0, 0, 7*weekOffset)

	var sessions []snapshot.Session
	for _, block := range program.Days {
		if !laneSwimTitles[block.Title] || block.Status != "active" {
			continue
		}
		poolLength := classifyPoolLength(block.Title)
		for _, slot := range block.Times {
			if slot.Status != "active" {
				continue
			}
			sessions = append(sessions, n.convertSlot(slot, weekStart, poolLength))
		}
	}
	return sessions
}

// convertSlot builds one session from a time-slot entry. A slot title with
// no " - " separator yields no end time; an empty title yields a session
// with both timestamps null, still emitted.
func (n *Normalizer) convertSlot(slot TimeSlot, weekStart time.Time, poolLength string) snapshot.Session {
	dayDate := weekStart.AddDate(0, 0, dayOffsets[strings.ToLower(slot.Day)])

	var startStr, endStr string
	if parts := strings.SplitN(slot.Title, " - ", 2); len(parts) == 2 {
		startStr, endStr = parts[0], parts[1]
	} else {
		startStr = slot.Title
	}

	return snapshot.Session{
		Status:     strings.ToLower(slot.Status),
		StartTime:  n.combine(dayDate, startStr),
		EndTime:    n.combine(dayDate, endStr),
		ID:         int(slot.ID),
		PoolLength: poolLength,
	}
}

// combine anchors a 12-hour clock string to a calendar date, formatted as a
// naive local timestamp. Empty or unparseable clock strings produce nil.
func (n *Normalizer) combine(date time.Time, clock string) *string {
	if clock == "" {
		return nil
	}
	t, err := time.Parse(slotTimeLayout, clock)
	if err != nil {
		n.logger.Warn().Str("time", clock).Msg("unparseable slot time")
		return nil
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
	s := snapshot.FormatTimestamp(combined)
	return &s
}

// classifyPoolLength derives the pool-length tag from a block title.
func classifyPoolLength(title string) string {
	switch {
	case strings.Contains(title, "Long Course (50m)"):
		return "50m"
	case strings.Contains(title, "Short Course (25m)"):
		return "25m"
	default:
		return "Unknown"
	}
}

// startOfWeek returns the most recent Monday at or before t, at t's clock
// date (time-of-day is irrelevant once combined with a slot time).
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
