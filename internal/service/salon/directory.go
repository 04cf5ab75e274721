package salon

import (
	"github.com/glowdesk/booking-bot/internal/model"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

// Directory resolves tenant metadata. Salons come from configuration
// and are immutable at runtime.
type Directory struct {
	byID    map[string]*model.Salon
	byPhone map[string]string
	order   []string
}

func NewDirectory(salons []model.Salon) *Directory {
	d := &Directory{
		byID:    make(map[string]*model.Salon, len(salons)),
		byPhone: make(map[string]string, len(salons)),
	}
	for i := range salons {
		s := &salons[i]
		d.byID[s.ID] = s
		if s.Phone != "" {
			d.byPhone[s.Phone] = s.ID
		}
		d.order = append(d.order, s.ID)
	}
	return d
}

// Get returns a salon by its token.
func (d *Directory) Get(id string) (*model.Salon, error) {
	s, ok := d.byID[id]
	if !ok || !s.Active {
		return nil, apperrors.NotFound("salon", nil)
	}
	return s, nil
}

// Exists reports whether a token names a known active salon.
func (d *Directory) Exists(id string) bool {
	s, ok := d.byID[id]
	return ok && s.Active
}

// ByPhone maps a destination phone number to its salon token.
func (d *Directory) ByPhone(phone string) (string, bool) {
	id, ok := d.byPhone[phone]
	return id, ok
}

// List returns all salons in configuration order.
func (d *Directory) List() []model.Salon {
	out := make([]model.Salon, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.byID[id])
	}
	return out
}
