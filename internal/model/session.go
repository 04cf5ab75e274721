package model

import (
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

// Step is the customer's position in the booking funnel.
type Step string

const (
	StepGreeting     Step = "greeting"
	StepAwaitService Step = "await_service"
	StepAwaitStaff   Step = "await_staff"
	StepAwaitDate    Step = "await_date"
	StepAwaitTime    Step = "await_time"
	StepDone         Step = "done"
)

// Provenance records why a session is bound to its salon. Explicit
// bindings survive a restart; heuristic ones are re-resolved every turn.
type Provenance string

const (
	ProvenanceExplicit Provenance = "explicit_command"
	ProvenanceSession  Provenance = "session"
	ProvenanceRecent   Provenance = "recent_access"
	ProvenancePhoneMap Provenance = "phone_map"
	ProvenanceDefault  Provenance = "default"
)

// Sticky reports whether the binding came from an explicit customer
// choice and should persist across turns and restarts.
func (p Provenance) Sticky() bool {
	return p == ProvenanceExplicit || p == ProvenanceSession
}

// Session is the per-phone conversational state. Numeric menu choices
// are resolved against the snapshots captured when the menu was
// rendered, never against a fresh query, so index and content cannot
// drift apart between turns.
type Session struct {
	Phone       string
	SalonID     string
	Provenance  Provenance
	Step        Step
	ServiceID   string
	ServiceName string
	StaffName   string
	Date        string // YYYY-MM-DD
	ContactName string

	ServiceMenu []Service
	StaffMenu   []StaffMember
	SlotMenu    []timeslot.Minutes
}

// NewSession creates a fresh session for a phone number.
func NewSession(phone string) *Session {
	return &Session{
		Phone: phone,
		Step:  StepGreeting,
	}
}

// ResetSelections clears funnel progress while keeping the tenant
// binding and contact name, the "restart" semantics.
func (s *Session) ResetSelections() {
	s.Step = StepGreeting
	s.ServiceID = ""
	s.ServiceName = ""
	s.StaffName = ""
	s.Date = ""
	s.ServiceMenu = nil
	s.StaffMenu = nil
	s.SlotMenu = nil
}
