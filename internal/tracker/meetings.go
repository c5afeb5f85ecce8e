// ABOUTME: Client-local meeting scheduler state
// ABOUTME: Meetings are never sent to the backend and live only as long as their view

package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingDateLayout is the accepted input format for meeting dates
const MeetingDateLayout = "2006-01-02 15:04"

var (
	// ErrMeetingIncomplete is returned when title or date is empty
	ErrMeetingIncomplete = errors.New("meeting title and date are required")
	// ErrInvalidDate is returned when the date cannot be parsed
	ErrInvalidDate = errors.New("date must look like 2006-01-02 15:04")
)

// MeetingInput is the schedule-meeting form buffer
type MeetingInput struct {
	Title string
	Date  string
	Notes string
}

// Reset clears the form
func (in *MeetingInput) Reset() {
	*in = MeetingInput{}
}

// Meeting is a scheduled meeting
type Meeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Timing places a meeting relative to now
type Timing int

const (
	TimingNow Timing = iota
	TimingUpcoming
	TimingPast
)

// MeetingBook holds meetings for one view
type MeetingBook struct {
	meetings []Meeting
	now      func() time.Time
}

// NewMeetingBook creates an empty book. now defaults to time.Now.
func NewMeetingBook(now func() time.Time) *MeetingBook {
	if now == nil {
		now = time.Now
	}
	return &MeetingBook{now: now}
}

// ParseMeetingDate parses user input in local time. The datetime-local
// "T" separator is accepted as well.
func ParseMeetingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Replace(s, "T", " ", 1))
	t, err := time.ParseInLocation(MeetingDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ValidateMeetingDate is a form validator for the date field
func ValidateMeetingDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrMeetingIncomplete
	}
	_, err := ParseMeetingDate(s)
	return err
}

// Add schedules a meeting. Empty title or date is rejected and nothing is added.
func (b *MeetingBook) Add(in MeetingInput) (Meeting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Date) == "" {
		return Meeting{}, ErrMeetingIncomplete
	}
	date, err := ParseMeetingDate(in.Date)
	if err != nil {
		return Meeting{}, err
	}

	m := Meeting{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: b.now(),
	}
	b.meetings = append(b.meetings, m)
	return m, nil
}

// Delete removes the meeting with the given id
func (b *MeetingBook) Delete(id string) bool {
	for i, m := range b.meetings {
		if m.ID == id {
			b.meetings = append(b.meetings[:i], b.meetings[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of meetings
func (b *MeetingBook) Len() int {
	return len(b.meetings)
}

// Meetings returns meetings in insertion order
func (b *MeetingBook) Meetings() []Meeting {
	return append([]Meeting(nil), b.meetings...)
}

// Sorted returns meetings ordered by date, earliest first
func (b *MeetingBook) Sorted() []Meeting {
	sorted := b.Meetings()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Timing classifies m against the book's clock
func (b *MeetingBook) Timing(m Meeting) Timing {
	return TimingAt(m.Date, b.now())
}

// Now returns the book's clock reading
func (b *MeetingBook) Now() time.Time {
	return b.now()
}

// TimingAt classifies date against now
func TimingAt(date, now time.Time) Timing {
	switch {
	case date.After(now):
		return TimingUpcoming
	case date.Before(now):
		return TimingPast
	default:
		return TimingNow
	}
}

// Upcoming returns sorted meetings after now
func (b *MeetingBook) Upcoming(now time.Time) []Meeting {
	var out []Meeting
	for _, m := range b.Sorted() {
		if TimingAt(m.Date, now) == TimingUpcoming {
			out = append(out, m)
		}
	}
	return out
}

// Past returns sorted meetings before now
func (b *MeetingBook) Past(now time.Time) []Meeting {
	var out []Meeting
	for _, m := range b.Sorted() {
		if TimingAt(m.Date, now) == TimingPast {
			out = append(out, m)
		}
	}
	return out
}
