package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/pkg/logger"
	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/chatcontext"
	"techgear-support-be/pkg/classifier"
	"techgear-support-be/pkg/responder"
	"techgear-support-be/pkg/router"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}

var _ logger.ILogger = noopLogger{}

// newTestService wires the full turn pipeline in fallback-only mode: no
// model, no retrieval, everything deterministic.
func newTestService() ISupportService {
	cat := catalog.FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")
	cls := classifier.New(nil, time.Second, nil)
	rt := router.New(cls, nil, responder.NewRegistry(), cat, nil, nil)
	store := session.NewStore(30*time.Minute, 10)
	tracker := chatcontext.NewTracker(cat, nil)
	return NewSupportService(store, tracker, rt, cat, func() bool { return false }, noopLogger{})
}

func TestChatGreeting(t *testing.T) {
	svc := newTestService()

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "Hi"})

	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you today?", res.Answer)
	assert.Equal(t, "general", res.Category)
	assert.Equal(t, "responder", res.RoutedTo)
	assert.NotEmpty(t, res.SessionId)
}

func TestChatFollowUpInheritsProduct(t *testing.T) {
	svc := newTestService()

	first, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "What is the price of SmartWatch Pro X?"})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionId)
	assert.Contains(t, first.Answer, "₹15,999")

	second, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Query:     "what's the price?",
		SessionId: first.SessionId,
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Contains(t, second.Answer, "₹15,999")
	assert.Contains(t, second.Answer, "SmartWatch Pro X")
}

func TestChatNewProductResetsSubject(t *testing.T) {
	svc := newTestService()

	first, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "Tell me about the smartwatch"})
	require.NoError(t, err)

	second, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Query:     "What is the price of Power Bank Ultra?",
		SessionId: first.SessionId,
	})
	require.NoError(t, err)
	assert.Contains(t, second.Answer, "₹3,499")
	assert.NotContains(t, second.Answer, "SmartWatch")
}

func TestChatUnknownEscalates(t *testing.T) {
	svc := newTestService()

	res, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "my neighbor borrowed my charger"})

	require.NoError(t, err)
	assert.Equal(t, "escalation", res.RoutedTo)
	assert.Equal(t, "unknown", res.Category)
	assert.Contains(t, res.Answer, "support@techgear.com")
}

func TestChatRejectsWhitespaceQuery(t *testing.T) {
	svc := newTestService()

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "   "})

	assert.Error(t, err)
}

func TestChatSessionsAreIsolated(t *testing.T) {
	svc := newTestService()

	a, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "tell me about the earbuds"})
	require.NoError(t, err)

	// a different session asking a bare follow-up has no subject to inherit
	b, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "what's the price?"})
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionId, b.SessionId)
	assert.NotContains(t, b.Answer, "Earbuds Elite are priced")
}

func TestHealthReportsSessions(t *testing.T) {
	svc := newTestService()

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{Query: "Hi"})
	require.NoError(t, err)

	health := svc.Health()
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 1, health.ActiveSessions)
	assert.False(t, health.RagReady)
}

func TestInfoListsProducts(t *testing.T) {
	svc := newTestService()

	info := svc.Info()
	assert.Equal(t, []string{"SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra"}, info.Products)
}
