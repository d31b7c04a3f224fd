package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/pkg/serverutils"
	"techgear-support-be/internal/service"
	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/chatcontext"
	"techgear-support-be/pkg/classifier"
	"techgear-support-be/pkg/responder"
	"techgear-support-be/pkg/router"
)

type silentLogger struct{}

func (silentLogger) Debug(string, string, map[string]interface{}) {}
func (silentLogger) Info(string, string, map[string]interface{})  {}
func (silentLogger) Warn(string, string, map[string]interface{})  {}
func (silentLogger) Error(string, string, map[string]interface{}) {}

func newTestApp() *fiber.App {
	cat := catalog.FromNames("SmartWatch Pro X", "Wireless Earbuds Elite", "Power Bank Ultra")
	cls := classifier.New(nil, time.Second, nil)
	rt := router.New(cls, nil, responder.NewRegistry(), cat, nil, nil)
	store := session.NewStore(30*time.Minute, 10)
	tracker := chatcontext.NewTracker(cat, nil)
	svc := service.NewSupportService(store, tracker, rt, cat, func() bool { return false }, silentLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postChat(t *testing.T, app *fiber.App, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) (serverutils.Response, dto.ChatResponse) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool             `json:"success"`
		Code    int              `json:"code"`
		Message string           `json:"message"`
		Data    dto.ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return serverutils.Response{
		Success: envelope.Success,
		Code:    envelope.Code,
		Message: envelope.Message,
	}, envelope.Data
}

func TestChatEndpointGreeting(t *testing.T) {
	app := newTestApp()

	resp := postChat(t, app, dto.ChatRequest{Query: "Hi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, data := decodeEnvelope(t, resp)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Hello! How can I help you today?", data.Answer)
	assert.Equal(t, "responder", data.RoutedTo)
	assert.NotEmpty(t, data.SessionId)
}

func TestChatEndpointKeepsSession(t *testing.T) {
	app := newTestApp()

	resp := postChat(t, app, dto.ChatRequest{Query: "What is the price of SmartWatch Pro X?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, first := decodeEnvelope(t, resp)

	resp = postChat(t, app, dto.ChatRequest{Query: "what's the price?", SessionId: first.SessionId})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, second := decodeEnvelope(t, resp)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Contains(t, second.Answer, "₹15,999")
}

func TestChatEndpointRejectsEmptyQuery(t *testing.T) {
	app := newTestApp()

	resp := postChat(t, app, dto.ChatRequest{Query: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestChatEndpointRejectsOversizedQuery(t *testing.T) {
	app := newTestApp()

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	resp := postChat(t, app, dto.ChatRequest{Query: string(long)})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/chat/v1/health", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInfoEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/chat/v1/info", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "SmartWatch Pro X")
}
