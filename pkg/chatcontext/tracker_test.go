package chatcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")
}

func sessionWith(product string, turns int) *session.Session {
	sess := &session.Session{ID: "t", LastProduct: product, LastActivity: time.Now()}
	for i := 0; i < turns; i++ {
		sess.History = append(sess.History, session.Exchange{Query: "earlier", Answer: "answer"})
	}
	return sess
}

func TestPrepareRewritesFollowUp(t *testing.T) {
	tr := NewTracker(testCatalog(), nil)
	sess := sessionWith("SmartWatch Pro X", 1)

	got := tr.Prepare("what's the price?", sess)

	assert.True(t, got.Rewritten)
	assert.Equal(t, "what's the price? for SmartWatch Pro X", got.Effective)
}

func TestPrepareFollowUpSignals(t *testing.T) {
	tr := NewTracker(testCatalog(), nil)

	tests := []struct {
		name      string
		query     string
		rewritten bool
	}{
		{"referential pronoun", "does it have GPS?", true},
		{"bare attribute", "and the warranty?", true},
		{"short question opener", "how long does shipping take", true},
		{"new product named", "what is the price of Power Bank Ultra?", false},
		{"product alias named", "tell me about the earbuds", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := sessionWith("SmartWatch Pro X", 2)
			got := tr.Prepare(tc.query, sess)
			assert.Equal(t, tc.rewritten, got.Rewritten)
			if !tc.rewritten {
				assert.Equal(t, tc.query, got.Effective)
			}
		})
	}
}

func TestPrepareNoHistoryNoRewrite(t *testing.T) {
	tr := NewTracker(testCatalog(), nil)
	sess := sessionWith("", 0)

	got := tr.Prepare("what's the price?", sess)

	assert.False(t, got.Rewritten)
	assert.Equal(t, "what's the price?", got.Effective)
}

func TestPrepareNoLastProductNoRewrite(t *testing.T) {
	tr := NewTracker(testCatalog(), nil)
	sess := sessionWith("", 3)

	got := tr.Prepare("what about the battery?", sess)

	assert.False(t, got.Rewritten)
}

func TestPrepareSkipsRewriteWhenProductAlreadyNamed(t *testing.T) {
	tr := NewTracker(testCatalog(), nil)
	sess := sessionWith("SmartWatch Pro X", 1)

	got := tr.Prepare("is the smartwatch pro x waterproof?", sess)

	assert.False(t, got.Rewritten)
	assert.Equal(t, "is the smartwatch pro x waterproof?", got.Effective)
}
