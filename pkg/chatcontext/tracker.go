package chatcontext

import (
	"log"
	"strings"

	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
)

// Prepared is the outcome of follow-up resolution for one incoming query.
type Prepared struct {
	// Effective is the query the rest of the pipeline should act on. It
	// equals the raw query unless a follow-up rewrite was applied.
	Effective string
	Rewritten bool
}

// Tracker decides whether a query is a follow-up to the previous turn and,
// if so, rewrites it to stand alone by pinning the last discussed product.
type Tracker struct {
	catalog *catalog.Catalog
	logger  *log.Logger
}

func NewTracker(cat *catalog.Catalog, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{catalog: cat, logger: logger}
}

// referential words that only make sense pointing back at earlier turns
var referentialWords = map[string]struct{}{
	"it": {}, "this": {}, "that": {}, "its": {}, "one": {}, "them": {}, "they": {},
}

// bare product attributes; asked alone they inherit the previous subject
var attributeWords = map[string]struct{}{
	"price": {}, "cost": {}, "warranty": {}, "battery": {},
	"features": {}, "feature": {}, "specs": {}, "availability": {},
}

var questionOpeners = map[string]struct{}{
	"what": {}, "whats": {}, "how": {}, "is": {}, "does": {}, "do": {},
	"can": {}, "when": {}, "where": {}, "why": {}, "which": {}, "are": {}, "will": {},
}

// Prepare resolves the effective query for a turn. The session must be held
// by the caller via the store's acquire lock.
func (t *Tracker) Prepare(query string, sess *session.Session) Prepared {
	if !sess.HasHistory() || sess.LastProduct == "" {
		return Prepared{Effective: query}
	}

	if !t.isFollowUp(query) {
		return Prepared{Effective: query}
	}

	// Never double up when the query already names the product.
	if strings.Contains(strings.ToLower(query), strings.ToLower(sess.LastProduct)) {
		return Prepared{Effective: query}
	}

	rewritten := query + " for " + sess.LastProduct
	t.logger.Printf("chatcontext: rewrote follow-up %q -> %q", query, rewritten)
	return Prepared{Effective: rewritten, Rewritten: true}
}

// isFollowUp combines three signals: referential wording, a short question
// opener, and the absence of any product mention while a subject is pinned.
func (t *Tracker) isFollowUp(query string) bool {
	// Naming a product establishes a new subject; that is never a follow-up.
	if t.catalog != nil && t.catalog.Mentions(query) {
		return false
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return false
	}

	for _, tok := range tokens {
		if _, ok := referentialWords[tok]; ok {
			return true
		}
		if _, ok := attributeWords[tok]; ok {
			return true
		}
	}

	if _, ok := questionOpeners[tokens[0]]; ok && len(tokens) <= 8 {
		return true
	}

	// A pinned subject plus no product mention means the customer is still
	// talking about the same thing.
	if t.catalog != nil && !t.catalog.Mentions(query) {
		return true
	}
	return false
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'")
		f = strings.ReplaceAll(f, "'", "")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
