package tenant

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/service/salon"
)

// Resolver decides which salon an inbound message belongs to. Rules are
// tried in order and the first match wins; the returned provenance says
// which rule decided, so restarts can tell explicit bindings apart from
// heuristic fallbacks.
type Resolver struct {
	directory    *salon.Directory
	accessLog    AccessLog
	defaultSalon string
}

func NewResolver(directory *salon.Directory, accessLog AccessLog, defaultSalon string) *Resolver {
	return &Resolver{
		directory:    directory,
		accessLog:    accessLog,
		defaultSalon: defaultSalon,
	}
}

// Resolve picks the tenant for one message. trigger is the raw message
// text, sess is the existing session (nil if none), destPhone is the
// number the message was sent to (empty on tenant-scoped webhooks).
func (r *Resolver) Resolve(ctx context.Context, trigger string, sess *model.Session, destPhone string) (string, model.Provenance) {
	// Rule 1: explicit command embedded in the message.
	if id, ok := r.parseCommand(trigger); ok {
		return id, model.ProvenanceExplicit
	}

	// Rule 2: a prior explicit choice persists across turns.
	if sess != nil && sess.SalonID != "" && sess.Provenance.Sticky() {
		return sess.SalonID, model.ProvenanceSession
	}

	// Rule 3: recent entry-point visit. Last writer wins across all
	// tenants, so this can bind the wrong salon under concurrency.
	if r.accessLog != nil {
		if id, ok := r.accessLog.Recent(ctx); ok && r.directory.Exists(id) {
			log.Debug().Str("salon", id).Msg("tenant resolved from recent access marker")
			return id, model.ProvenanceRecent
		}
	}

	// Rule 4: static destination-phone mapping.
	if destPhone != "" {
		if id, ok := r.directory.ByPhone(destPhone); ok {
			return id, model.ProvenancePhoneMap
		}
	}

	// Rule 5: configured default tenant.
	return r.defaultSalon, model.ProvenanceDefault
}

// parseCommand extracts a salon token from a "hi <token>" greeting. An
// unknown token is not an error; the rule just does not match.
func (r *Resolver) parseCommand(trigger string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(trigger))
	for _, prefix := range []string{"hi ", "hello "} {
		if strings.HasPrefix(text, prefix) {
			token := strings.TrimSpace(strings.TrimPrefix(text, prefix))
			if token != "" && r.directory.Exists(token) {
				return token, true
			}
		}
	}
	return "", false
}
