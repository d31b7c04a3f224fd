package router

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/classifier"
	"techgear-support-be/pkg/events"
	"techgear-support-be/pkg/responder"
)

type stubGenerator struct {
	answer string
	err    error
	calls  int
}

func (s *stubGenerator) Answer(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.answer, s.err
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) wait(t *testing.T) events.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.events) > 0 {
			e := p.events[0]
			p.mu.Unlock()
			return e
		}
		p.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no escalation event published")
	return nil
}

// fallback-only classifier: no provider, deterministic keyword rules
func newTestRouter(gen Generator, pub EventPublisher) *Router {
	cls := classifier.New(nil, time.Second, nil)
	cat := catalog.FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")
	return New(cls, gen, responder.NewRegistry(), cat, pub, nil)
}

func TestRunRespondsWithGeneratedAnswer(t *testing.T) {
	gen := &stubGenerator{answer: "The SmartWatch Pro X costs ₹15,999."}
	r := newTestRouter(gen, nil)

	out := r.Run(context.Background(), "s1", "what is the price of the smartwatch")

	assert.Equal(t, NodeResponder, out.RoutedTo)
	assert.Equal(t, classifier.CategoryProducts, out.Category)
	assert.Equal(t, "The SmartWatch Pro X costs ₹15,999.", out.Answer)
	assert.Equal(t, 1, gen.calls)
}

func TestRunFallsBackToRegistryOnGenerationError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("retrieval timeout")}
	r := newTestRouter(gen, nil)

	out := r.Run(context.Background(), "s1", "what's the price? for SmartWatch Pro X")

	assert.Equal(t, NodeResponder, out.RoutedTo)
	assert.Equal(t, "SmartWatch Pro X is priced at ₹15,999.", out.Answer)
}

func TestRunWithoutGeneratorUsesRegistry(t *testing.T) {
	r := newTestRouter(nil, nil)

	out := r.Run(context.Background(), "s1", "can i return my order?")

	assert.Equal(t, NodeResponder, out.RoutedTo)
	assert.Equal(t, classifier.CategoryReturns, out.Category)
	assert.Equal(t, "Yes. You can return any product within 7 days of delivery for a full refund.", out.Answer)
}

func TestRunListingShortCircuit(t *testing.T) {
	gen := &stubGenerator{answer: "should not be used"}
	r := newTestRouter(gen, nil)

	out := r.Run(context.Background(), "s1", "what products do you sell?")

	assert.Equal(t, "We sell: SmartWatch Pro X, Wireless Earbuds Elite, Power Bank Ultra. Ask me about any of them!", out.Answer)
	assert.Equal(t, 0, gen.calls, "listing answers must not hit the generator")
}

func TestRunEscalatesUnknown(t *testing.T) {
	pub := &capturingPublisher{}
	r := newTestRouter(nil, pub)

	out := r.Run(context.Background(), "sess-42", "my gizmo exploded yesterday")

	assert.Equal(t, NodeEscalation, out.RoutedTo)
	assert.Equal(t, classifier.CategoryUnknown, out.Category)
	assert.Equal(t, EscalationMessage, out.Answer)

	event := pub.wait(t)
	require.Equal(t, events.EscalationEventType, event.EventType())
	payload := event.Payload()
	assert.Equal(t, "sess-42", payload["session_id"])
	assert.Equal(t, "my gizmo exploded yesterday", payload["query"])
}

func TestRunEscalationIsDeterministic(t *testing.T) {
	r := newTestRouter(nil, nil)

	first := r.Run(context.Background(), "s1", "blargh nonsense query")
	for i := 0; i < 10; i++ {
		again := r.Run(context.Background(), "s1", "blargh nonsense query")
		assert.Equal(t, first, again)
	}
}

func TestEscalationMessageContents(t *testing.T) {
	assert.Contains(t, EscalationMessage, "support@techgear.com")
	assert.Contains(t, EscalationMessage, "Mon-Sat, 9AM-6PM IST")
}
