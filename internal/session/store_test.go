package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/booking-bot/internal/model"
)

func TestPutGetDelete(t *testing.T) {
	store := NewStore(time.Minute)

	_, ok := store.Get("555")
	assert.False(t, ok)

	sess := model.NewSession("555")
	sess.SalonID = "salon_a"
	store.Put(sess)

	got, ok := store.Get("555")
	require.True(t, ok)
	assert.Equal(t, "salon_a", got.SalonID)
	assert.Equal(t, 1, store.Count())

	store.Delete("555")
	_, ok = store.Get("555")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Count())
}

func TestIdleExpiry(t *testing.T) {
	store := NewStore(30 * time.Millisecond)

	store.Put(model.NewSession("555"))
	time.Sleep(60 * time.Millisecond)

	_, ok := store.Get("555")
	assert.False(t, ok)
}

func TestPutRefreshesTTL(t *testing.T) {
	store := NewStore(60 * time.Millisecond)

	sess := model.NewSession("555")
	store.Put(sess)
	time.Sleep(40 * time.Millisecond)
	store.Put(sess)
	time.Sleep(40 * time.Millisecond)

	_, ok := store.Get("555")
	assert.True(t, ok)
}

func TestLockSerializesPerPhone(t *testing.T) {
	store := NewStore(time.Minute)

	const turns = 100
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := store.Lock("555")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, turns, counter)
}
