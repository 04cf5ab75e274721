package salon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/booking-bot/internal/model"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

func newTestDirectory() *Directory {
	return NewDirectory([]model.Salon{
		{ID: "salon_a", Name: "Glamour Cuts", Phone: "14155550101", Active: true},
		{ID: "salon_b", Name: "Style Studio", Phone: "14155550102", Active: true},
		{ID: "salon_c", Name: "Dormant", Phone: "14155550103", Active: false},
	})
}

func TestGet(t *testing.T) {
	d := newTestDirectory()

	s, err := d.Get("salon_a")
	require.NoError(t, err)
	assert.Equal(t, "Glamour Cuts", s.Name)

	_, err = d.Get("salon_z")
	assert.True(t, apperrors.IsNotFound(err))

	// Inactive salons behave as if they do not exist.
	_, err = d.Get("salon_c")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExists(t *testing.T) {
	d := newTestDirectory()
	assert.True(t, d.Exists("salon_a"))
	assert.False(t, d.Exists("salon_c"))
	assert.False(t, d.Exists("salon_z"))
}

func TestByPhone(t *testing.T) {
	d := newTestDirectory()

	id, ok := d.ByPhone("14155550102")
	require.True(t, ok)
	assert.Equal(t, "salon_b", id)

	_, ok = d.ByPhone("19990000000")
	assert.False(t, ok)
}

func TestListPreservesOrder(t *testing.T) {
	d := newTestDirectory()
	list := d.List()
	require.Len(t, list, 3)
	assert.Equal(t, "salon_a", list[0].ID)
	assert.Equal(t, "salon_b", list[1].ID)
	assert.Equal(t, "salon_c", list[2].ID)
}
