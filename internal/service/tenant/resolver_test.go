package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/service/salon"
)

func newTestDirectory() *salon.Directory {
	return salon.NewDirectory([]model.Salon{
		{ID: "salon_a", Name: "Glamour Cuts", Phone: "14155550101", Active: true},
		{ID: "salon_b", Name: "Style Studio", Phone: "14155550102", Active: true},
		{ID: "salon_closed", Name: "Closed Salon", Phone: "14155550109", Active: false},
	})
}

func TestResolveExplicitCommand(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	id, prov := r.Resolve(context.Background(), "hi salon_b", nil, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceExplicit, prov)

	id, prov = r.Resolve(context.Background(), "  HELLO salon_b  ", nil, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceExplicit, prov)
}

func TestResolveUnknownTokenFallsThrough(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	id, prov := r.Resolve(context.Background(), "hi salon_z", nil, "")
	assert.Equal(t, "salon_a", id)
	assert.Equal(t, model.ProvenanceDefault, prov)

	// Inactive salons are not valid tokens either.
	id, prov = r.Resolve(context.Background(), "hi salon_closed", nil, "")
	assert.Equal(t, "salon_a", id)
	assert.Equal(t, model.ProvenanceDefault, prov)
}

func TestResolveStickySession(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	sess := model.NewSession("555")
	sess.SalonID = "salon_b"
	sess.Provenance = model.ProvenanceExplicit

	id, prov := r.Resolve(context.Background(), "1", sess, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceSession, prov)
}

func TestResolveHeuristicSessionDoesNotStick(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	sess := model.NewSession("555")
	sess.SalonID = "salon_b"
	sess.Provenance = model.ProvenanceDefault

	// A binding that was only a fallback is re-resolved each turn.
	id, prov := r.Resolve(context.Background(), "1", sess, "")
	assert.Equal(t, "salon_a", id)
	assert.Equal(t, model.ProvenanceDefault, prov)
}

func TestResolveExplicitBeatsSession(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	sess := model.NewSession("555")
	sess.SalonID = "salon_a"
	sess.Provenance = model.ProvenanceExplicit

	id, prov := r.Resolve(context.Background(), "hi salon_b", sess, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceExplicit, prov)
}

func TestResolveRecentAccess(t *testing.T) {
	accessLog := NewMemoryAccessLog(time.Minute)
	r := NewResolver(newTestDirectory(), accessLog, "salon_a")
	ctx := context.Background()

	assert.NoError(t, accessLog.Touch(ctx, "salon_b"))

	id, prov := r.Resolve(ctx, "1", nil, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceRecent, prov)

	// Last writer wins across all tenants.
	assert.NoError(t, accessLog.Touch(ctx, "salon_a"))
	id, _ = r.Resolve(ctx, "1", nil, "")
	assert.Equal(t, "salon_a", id)
}

func TestResolveRecentAccessExpires(t *testing.T) {
	accessLog := NewMemoryAccessLog(20 * time.Millisecond)
	r := NewResolver(newTestDirectory(), accessLog, "salon_a")
	ctx := context.Background()

	assert.NoError(t, accessLog.Touch(ctx, "salon_b"))
	time.Sleep(50 * time.Millisecond)

	id, prov := r.Resolve(ctx, "1", nil, "")
	assert.Equal(t, "salon_a", id)
	assert.Equal(t, model.ProvenanceDefault, prov)
}

func TestResolveSessionBeatsRecentAccess(t *testing.T) {
	accessLog := NewMemoryAccessLog(time.Minute)
	r := NewResolver(newTestDirectory(), accessLog, "salon_a")
	ctx := context.Background()

	assert.NoError(t, accessLog.Touch(ctx, "salon_a"))

	sess := model.NewSession("555")
	sess.SalonID = "salon_b"
	sess.Provenance = model.ProvenanceExplicit

	id, prov := r.Resolve(ctx, "2", sess, "")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenanceSession, prov)
}

func TestResolvePhoneMapping(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	id, prov := r.Resolve(context.Background(), "hi", nil, "14155550102")
	assert.Equal(t, "salon_b", id)
	assert.Equal(t, model.ProvenancePhoneMap, prov)
}

func TestResolveDefaultFallback(t *testing.T) {
	r := NewResolver(newTestDirectory(), NewMemoryAccessLog(time.Minute), "salon_a")

	id, prov := r.Resolve(context.Background(), "hi", nil, "19990000000")
	assert.Equal(t, "salon_a", id)
	assert.Equal(t, model.ProvenanceDefault, prov)
}
