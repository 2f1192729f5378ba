package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sentinel-dashboard/internal/classifier"
	"sentinel-dashboard/internal/feed"
	"sentinel-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *feed.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cls := classifier.NewOfflineClient(-1, logger) // no emulated latency
	st := store.New(logger)
	controller := feed.New(cls, st, -1, logger)

	h := NewHandler(controller, st, 20, logger)
	router := gin.New()
	h.RegisterRoutes(router)
	return router, controller
}

func TestSubmitMessage_Accepted(t *testing.T) {
	router, controller := newTestRouter(t)

	body := `{"author":"alice","text":"hello world"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusAccepted, w.Body.String())
	}

	var msg struct {
		ID    string `json:"id"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if msg.ID == "" {
		t.Error("response message has no id")
	}
	if msg.State != "pending" {
		t.Errorf("response state = %q, want pending", msg.State)
	}

	controller.Wait()
}

func TestSubmitMessage_BlankRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{`{"text":"   "}`, `{}`, `{"author":"a"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status for body %s = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestGetMessages(t *testing.T) {
	router, controller := newTestRouter(t)

	for _, body := range []string{
		`{"text":"first message"}`,
		`{"text":"second message"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	controller.Wait()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Messages []struct {
			Content string `json:"content"`
			State   string `json:"state"`
		} `json:"messages"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Messages) != 2 {
		t.Fatalf("total = %d with %d messages, want 2", resp.Total, len(resp.Messages))
	}
	if resp.Messages[0].Content != "first message" {
		t.Errorf("messages out of submission order: first is %q", resp.Messages[0].Content)
	}
	for i, msg := range resp.Messages {
		if msg.State == "pending" {
			t.Errorf("messages[%d] still pending after Wait", i)
		}
	}
}

func TestGetStats(t *testing.T) {
	router, controller := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)
	controller.Wait()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var overview struct {
		TotalMessages    int     `json:"total_messages"`
		ResolvedMessages int     `json:"resolved_messages"`
		AvgSentiment     float64 `json:"avg_sentiment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if overview.TotalMessages != 1 || overview.ResolvedMessages != 1 {
		t.Errorf("overview counts = %+v, want one resolved message", overview)
	}
	if overview.AvgSentiment < -1.0 || overview.AvgSentiment > 1.0 {
		t.Errorf("avg sentiment %v out of [-1, 1]", overview.AvgSentiment)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health body = %s, want healthy status", w.Body.String())
	}
}
