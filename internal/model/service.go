package model

// Service is a bookable offering belonging to exactly one salon.
type Service struct {
	ID          string  `db:"id" json:"id"`
	SalonID     string  `db:"salon_id" json:"salon_id"`
	Name        string  `db:"name" json:"name"`
	Duration    int     `db:"duration" json:"duration"` // minutes
	Price       float64 `db:"price" json:"price"`
	Description string  `db:"description" json:"description,omitempty"`
}
