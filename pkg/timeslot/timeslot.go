package timeslot

import (
	"fmt"
	"sort"
	"strings"
)

// Minutes is a time-of-day expressed as minutes from midnight. Slots are
// generated, stored and compared in this form; formatting to a display
// string happens only at the presentation boundary.
type Minutes int

// Format renders the slot as a 12-hour clock string, e.g. "09:30 AM".
func (m Minutes) Format() string {
	h := int(m) / 60
	min := int(m) % 60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", h, min, suffix)
}

// Parse reads a 24-hour "HH:MM" string.
func Parse(s string) (Minutes, error) {
	var h, min int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &min); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return Minutes(h*60 + min), nil
}

// Range is a half-open working window [Open, Close).
type Range struct {
	Open  Minutes
	Close Minutes
}

// ParseRange reads an "HH:MM-HH:MM" window.
func ParseRange(s string) (Range, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range %q", s)
	}
	open, err := Parse(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, err
	}
	close, err := Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, err
	}
	if close <= open {
		return Range{}, fmt.Errorf("range %q closes before it opens", s)
	}
	return Range{Open: open, Close: close}, nil
}

// Slots expands the window into candidate start times at the given
// granularity, in chronological order.
func (r Range) Slots(interval int) []Minutes {
	if interval <= 0 {
		return nil
	}
	var out []Minutes
	for t := r.Open; t < r.Close; t += Minutes(interval) {
		out = append(out, t)
	}
	return out
}

// Sort orders slots chronologically in place.
func Sort(slots []Minutes) {
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
}
