package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "12:00 AM", Minutes(0).Format())
	assert.Equal(t, "09:00 AM", Minutes(540).Format())
	assert.Equal(t, "09:30 AM", Minutes(570).Format())
	assert.Equal(t, "12:00 PM", Minutes(720).Format())
	assert.Equal(t, "12:30 PM", Minutes(750).Format())
	assert.Equal(t, "01:00 PM", Minutes(780).Format())
	assert.Equal(t, "04:30 PM", Minutes(990).Format())
	assert.Equal(t, "11:59 PM", Minutes(1439).Format())
}

func TestParse(t *testing.T) {
	m, err := Parse("09:00")
	require.NoError(t, err)
	assert.Equal(t, Minutes(540), m)

	m, err = Parse("16:30")
	require.NoError(t, err)
	assert.Equal(t, Minutes(990), m)

	_, err = Parse("25:00")
	assert.Error(t, err)
	_, err = Parse("09:75")
	assert.Error(t, err)
	_, err = Parse("not a time")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("09:00-17:00")
	require.NoError(t, err)
	assert.Equal(t, Minutes(540), r.Open)
	assert.Equal(t, Minutes(1020), r.Close)

	_, err = ParseRange("17:00-09:00")
	assert.Error(t, err)
	_, err = ParseRange("09:00")
	assert.Error(t, err)
	_, err = ParseRange("09:00-09:00")
	assert.Error(t, err)
}

func TestSlots(t *testing.T) {
	r := Range{Open: 540, Close: 1020}
	slots := r.Slots(30)

	require.Len(t, slots, 16)
	assert.Equal(t, Minutes(540), slots[0])
	assert.Equal(t, Minutes(990), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i], slots[i-1])
	}

	// Close is exclusive: 17:00 itself is never a start time.
	assert.NotContains(t, slots, Minutes(1020))

	assert.Nil(t, r.Slots(0))
	assert.Nil(t, r.Slots(-30))
}

func TestSort(t *testing.T) {
	slots := []Minutes{990, 540, 750}
	Sort(slots)
	assert.Equal(t, []Minutes{540, 750, 990}, slots)
}
