package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday; the Monday of its week is 2025-03-17.
var fixedNow = time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(zerolog.Nop())
}

func docWithBlock(title, blockStatus string, slots ...TimeSlot) *WeeklyDocument {
	return &WeeklyDocument{Programs: []Program{{
		Name: "Swim - Drop-In",
		Days: []DayBlock{{Title: title, Status: blockStatus, Times: slots}},
	}}}
}

func TestNormalize_EndToEnd(t *testing.T) {
	doc := docWithBlock("Lane Swim", "active", TimeSlot{
		Day:    "Monday",
		Title:  "6:00 AM - 8:00 AM",
		Status: "active",
		ID:     7,
	})

	sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
	require.Len(t, sessions, 1)

	got := sessions[0]
	require.Equal(t, "active", got.Status)
	require.NotNil(t, got.StartTime)
	require.NotNil(t, got.EndTime)
	require.Equal(t, "2025-03-17T06:00:00", *got.StartTime)
	require.Equal(t, "2025-03-17T08:00:00", *got.EndTime)
	require.Equal(t, 7, got.ID)
	require.Equal(t, "Unknown", got.PoolLength)
}

func TestNormalize_PoolLengthClassification(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Lane Swim", "Unknown"},
		{"Lane Swim: Long Course (50m)", "50m"},
		{"Lane Swim: Short Course (25m)", "25m"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			doc := docWithBlock(tt.title, "active", TimeSlot{
				Day: "Tuesday", Title: "7:00 AM - 9:00 AM", Status: "active", ID: 1,
			})
			sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
			require.Len(t, sessions, 1)
			require.Equal(t, tt.expected, sessions[0].PoolLength)
		})
	}
}

func TestNormalize_ProgramSelection(t *testing.T) {
	t.Run("no drop-in program", func(t *testing.T) {
		doc := &WeeklyDocument{Programs: []Program{{Name: "Swim - Registered"}}}
		require.Empty(t, newTestNormalizer().Normalize(doc, 0, fixedNow))
	})

	t.Run("first of several drop-in programs wins", func(t *testing.T) {
		doc := &WeeklyDocument{Programs: []Program{
			{Name: "Swim - Drop-In", Days: []DayBlock{{
				Title: "Lane Swim", Status: "active",
				Times: []TimeSlot{{Day: "Monday", Title: "6:00 AM - 7:00 AM", Status: "active", ID: 1}},
			}}},
			{Name: "Swim - Drop-In", Days: []DayBlock{{
				Title: "Lane Swim", Status: "active",
				Times: []TimeSlot{{Day: "Monday", Title: "9:00 AM - 10:00 AM", Status: "active", ID: 2}},
			}}},
		}}
		sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
		require.Len(t, sessions, 1)
		require.Equal(t, 1, sessions[0].ID)
	})
}

func TestNormalize_BlockFiltering(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		status string
		want   int
	}{
		{"other activity discarded", "Leisure Swim", "active", 0},
		{"inactive block discarded", "Lane Swim", "inactive", 0},
		{"active lane swim kept", "Lane Swim", "active", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithBlock(tt.title, tt.status, TimeSlot{
				Day: "Friday", Title: "6:00 PM - 8:00 PM", Status: "active", ID: 3,
			})
			require.Len(t, newTestNormalizer().Normalize(doc, 0, fixedNow), tt.want)
		})
	}
}

func TestNormalize_SlotFiltering(t *testing.T) {
	doc := docWithBlock("Lane Swim", "active",
		TimeSlot{Day: "Monday", Title: "6:00 AM - 7:00 AM", Status: "active", ID: 1},
		TimeSlot{Day: "Monday", Title: "7:00 AM - 8:00 AM", Status: "cancelled", ID: 2},
		TimeSlot{Day: "Monday", Title: "8:00 AM - 9:00 AM", Status: "active", ID: 3},
	)
	sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
	require.Len(t, sessions, 2)
	require.Equal(t, 1, sessions[0].ID)
	require.Equal(t, 3, sessions[1].ID)
}

func TestNormalize_DayOffsets(t *testing.T) {
	tests := []struct {
		day      string
		expected string
	}{
		{"Monday", "2025-03-17T06:30:00"},
		{"tuesday", "2025-03-18T06:30:00"},
		{"SUNDAY", "2025-03-23T06:30:00"},
		// Unrecognized day names fall back to Monday.
		{"Someday", "2025-03-17T06:30:00"},
		{"", "2025-03-17T06:30:00"},
	}

	for _, tt := range tests {
		t.Run("day "+tt.day, func(t *testing.T) {
			doc := docWithBlock("Lane Swim", "active", TimeSlot{
				Day: tt.day, Title: "6:30 AM - 8:45 AM", Status: "active", ID: 1,
			})
			sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
			require.Len(t, sessions, 1)
			require.Equal(t, tt.expected, *sessions[0].StartTime)
		})
	}
}

func TestNormalize_WeekOffset(t *testing.T) {
	doc := docWithBlock("Lane Swim", "active", TimeSlot{
		Day: "Monday", Title: "6:30 AM - 8:45 AM", Status: "active", ID: 1,
	})
	sessions := newTestNormalizer().Normalize(doc, 1, fixedNow)
	require.Len(t, sessions, 1)
	require.Equal(t, "2025-03-24T06:30:00", *sessions[0].StartTime)
	require.Equal(t, "2025-03-24T08:45:00", *sessions[0].EndTime)
}

func TestNormalize_SlotTitleShapes(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantStart *string
		wantEnd   *string
	}{
		{
			name:      "full range",
			title:     "6:30 AM - 8:45 AM",
			wantStart: strPtr("2025-03-17T06:30:00"),
			wantEnd:   strPtr("2025-03-17T08:45:00"),
		},
		{
			name:      "no separator means no end",
			title:     "6:30 AM",
			wantStart: strPtr("2025-03-17T06:30:00"),
			wantEnd:   nil,
		},
		{
			name:      "empty title still emits a session",
			title:     "",
			wantStart: nil,
			wantEnd:   nil,
		},
		{
			name:      "unparseable times become null",
			title:     "dawn - dusk",
			wantStart: nil,
			wantEnd:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithBlock("Lane Swim", "active", TimeSlot{
				Day: "Monday", Title: tt.title, Status: "active", ID: 4,
			})
			sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
			require.Len(t, sessions, 1)
			require.Equal(t, tt.wantStart, sessions[0].StartTime)
			require.Equal(t, tt.wantEnd, sessions[0].EndTime)
		})
	}
}

func TestNormalize_StatusLowercased(t *testing.T) {
	doc := docWithBlock("Lane Swim", "active", TimeSlot{
		Day: "Monday", Title: "6:00 AM - 7:00 AM", Status: "active", ID: 1,
	})
	sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
	require.Len(t, sessions, 1)
	require.Equal(t, "active", sessions[0].Status)
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := docWithBlock("Lane Swim: Long Course (50m)", "active",
		TimeSlot{Day: "Wednesday", Title: "11:00 AM - 1:15 PM", Status: "active", ID: 5},
		TimeSlot{Day: "Saturday", Title: "6:30 AM - 8:45 AM", Status: "active", ID: 6},
	)

	n := newTestNormalizer()
	first, err := json.Marshal(n.Normalize(doc, 0, fixedNow))
	require.NoError(t, err)
	second, err := json.Marshal(n.Normalize(doc, 0, fixedNow))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNormalize_PreservesDocumentOrder(t *testing.T) {
	doc := &WeeklyDocument{Programs: []Program{{
		Name: "Swim - Drop-In",
		Days: []DayBlock{
			{Title: "Lane Swim: Short Course (25m)", Status: "active", Times: []TimeSlot{
				{Day: "Friday", Title: "5:00 PM - 6:00 PM", Status: "active", ID: 10},
			}},
			{Title: "Lane Swim", Status: "active", Times: []TimeSlot{
				{Day: "Monday", Title: "6:00 AM - 7:00 AM", Status: "active", ID: 11},
				{Day: "Tuesday", Title: "6:00 AM - 7:00 AM", Status: "active", ID: 12},
			}},
		},
	}}}

	sessions := newTestNormalizer().Normalize(doc, 0, fixedNow)
	require.Len(t, sessions, 3)
	require.Equal(t, []int{10, 11, 12}, []int{sessions[0].ID, sessions[1].ID, sessions[2].ID})
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"wednesday", time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC), "2025-03-17"},
		{"monday itself", time.Date(2025, 3, 17, 0, 30, 0, 0, time.UTC), "2025-03-17"},
		{"sunday rolls back", time.Date(2025, 3, 23, 23, 0, 0, 0, time.UTC), "2025-03-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, startOfWeek(tt.now).Format("2006-01-02"))
		})
	}
}

func strPtr(s string) *string { return &s }
