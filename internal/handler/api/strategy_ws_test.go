package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	"StratGen/internal/domain/service"
	"StratGen/pkg/logger"
)

type stagedAdvisor struct {
	stages []string
	resp   *models.StrategyResponse
}

func (s *stagedAdvisor) Advise(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved) (*models.StrategyResponse, error) {
	return s.AdviseStream(ctx, req, creds, nil)
}

func (s *stagedAdvisor) AdviseStream(_ context.Context, _ *models.StrategyRequest, _ credentials.Resolved, onStage service.Progress) (*models.StrategyResponse, error) {
	if onStage != nil {
		for _, st := range s.stages {
			onStage(st)
		}
	}
	return s.resp, nil
}

func dialStream(t *testing.T, h *StrategyHandler) *websocket.Conn {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/generate-strategy/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGenerateStrategyStream(t *testing.T) {
	advisor := &stagedAdvisor{
		stages: []string{"recent_news", "news_summary", "decision"},
		resp: &models.StrategyResponse{
			SuggestedAction: models.ActionBuy,
			Reasoning:       "strong quarter",
			Sources:         []models.Source{{Title: "t", URL: "https://a.example"}},
		},
	}
	log, err := logger.New(&logger.Config{Level: "error"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewStrategyHandler(advisor, nil, nil, noopMetrics{}, log, nil, RateLimitSettings{})

	conn := dialStream(t, h)
	if err := conn.WriteJSON(map[string]string{
		"ticker_symbol":         "nvda",
		"risk_appetite":         "High",
		"investment_experience": "Intermediate",
		"time_horizon":          "Medium-term",
	}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var stages []string
	for {
		var frame struct {
			Stage  string                   `json:"stage"`
			Result *models.StrategyResponse `json:"result"`
			Error  json.RawMessage          `json:"error"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if frame.Stage != "" {
			stages = append(stages, frame.Stage)
			continue
		}
		if frame.Error != nil {
			t.Fatalf("unexpected error frame: %s", frame.Error)
		}
		if frame.Result.SuggestedAction != models.ActionBuy {
			t.Errorf("action = %q, want Buy", frame.Result.SuggestedAction)
		}
		break
	}

	if len(stages) != 3 || stages[0] != "recent_news" || stages[2] != "decision" {
		t.Errorf("stages = %v", stages)
	}
}

func TestGenerateStrategyStreamValidation(t *testing.T) {
	h := newTestHandler(t, &stubAdvisor{}, nil, nil)

	conn := dialStream(t, h)
	if err := conn.WriteJSON(map[string]string{
		"ticker_symbol": "AAPL",
		"risk_appetite": "Reckless",
	}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var frame struct {
		Error json.RawMessage `json:"error"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Error == nil {
		t.Fatal("expected error frame")
	}
	if !strings.Contains(string(frame.Error), "ERR_ONEOF") {
		t.Errorf("error frame missing ERR_ONEOF: %s", frame.Error)
	}
}
