package session

import (
	"hash/fnv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/glowdesk/booking-bot/internal/model"
)

const lockShards = 64

// Store holds per-phone conversational state. Entries expire after an
// idle TTL so a long-running process does not accumulate abandoned
// sessions. State is process-local: sessions do not survive a restart.
type Store struct {
	cache *gocache.Cache
	locks [lockShards]sync.Mutex
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		cache: gocache.New(ttl, 5*time.Minute),
	}
}

// Lock serializes handling for one phone number. Two messages arriving
// in quick succession for the same customer would otherwise race on the
// session and lose updates; different phones proceed independently.
func (s *Store) Lock(phone string) func() {
	shard := &s.locks[shardFor(phone)]
	shard.Lock()
	return shard.Unlock
}

func shardFor(phone string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(phone))
	return h.Sum32() % lockShards
}

// Get returns the session for a phone, if one is live.
func (s *Store) Get(phone string) (*model.Session, bool) {
	v, ok := s.cache.Get(phone)
	if !ok {
		return nil, false
	}
	return v.(*model.Session), true
}

// Put stores the session and refreshes its idle TTL.
func (s *Store) Put(sess *model.Session) {
	s.cache.SetDefault(sess.Phone, sess)
}

// Delete drops the session.
func (s *Store) Delete(phone string) {
	s.cache.Delete(phone)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
