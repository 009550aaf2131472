package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/services"
)

type stubRAGService struct {
	resp *models.ChatResponse
	err  error
	got  models.ChatRequest
}

func (s *stubRAGService) Ask(_ context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newChatRouter(svc *stubRAGService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/chat", NewChatController(svc).Ask)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatHandlerReturnsAnswer(t *testing.T) {
	svc := &stubRAGService{resp: &models.ChatResponse{
		Answer:    "Two weeks of vacation.",
		SessionID: "abc-123",
	}}
	router := newChatRouter(svc)

	rec := postChat(t, router, `{"question": "How much vacation do I get?", "sessionID": "abc-123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Two weeks of vacation.", resp.Answer)
	assert.Equal(t, "abc-123", resp.SessionID)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, "abc-123", svc.got.SessionID)
}

func TestChatHandlerMissingQuestion(t *testing.T) {
	router := newChatRouter(&stubRAGService{})

	rec := postChat(t, router, `{"sessionID": "abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandlerAddsPIIWarning(t *testing.T) {
	svc := &stubRAGService{resp: &models.ChatResponse{Answer: "ok", SessionID: "s"}}
	router := newChatRouter(svc)

	rec := postChat(t, router, `{"question": "Can I fire John Smith for absenteeism?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.PIIWarning, resp.Warning)
}

func TestChatHandlerMapsPipelineErrors(t *testing.T) {
	svc := &stubRAGService{err: models.ErrGenerationFailed}
	router := newChatRouter(svc)

	rec := postChat(t, router, `{"question": "anything"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatHandlerMapsTimeout(t *testing.T) {
	svc := &stubRAGService{err: models.ErrUpstreamTimeout}
	router := newChatRouter(svc)

	rec := postChat(t, router, `{"question": "anything"}`)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
