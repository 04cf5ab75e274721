package model

// StaffMember is a provider belonging to exactly one salon, able to
// perform a subset of that salon's services.
type StaffMember struct {
	Name        string   `db:"name" json:"name"`
	SalonID     string   `db:"salon_id" json:"salon_id"`
	Email       string   `db:"email" json:"email,omitempty"`
	ServiceIDs  []string `db:"-" json:"services"`
	WorkingDays []string `db:"-" json:"working_days"`
	Specialties []string `db:"-" json:"specialties,omitempty"`
}

// Offers reports whether the staff member performs the given service.
func (s *StaffMember) Offers(serviceID string) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
