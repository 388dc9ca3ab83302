package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	pkghttp "StratGen/pkg/http"
	"StratGen/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The browser form is served from the same origin; other clients use
	// the plain POST endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// stageFrame is a progress notification pushed before each workflow stage.
type stageFrame struct {
	Stage string `json:"stage"`
}

// resultFrame terminates the stream with either a recommendation or an
// error envelope, never both.
type resultFrame struct {
	Result *models.StrategyResponse `json:"result,omitempty"`
	Error  interface{}              `json:"error,omitempty"`
}

// GenerateStrategyStream handles GET /generate-strategy/stream. The client
// sends one request frame, receives a stage frame per workflow step and a
// final result frame, then the connection closes.
func (h *StrategyHandler) GenerateStrategyStream(c echo.Context) error {
	if !h.allow(c.RealIP()) {
		h.metrics.RecordRequest("rate_limited")
		return pkghttp.AppErrorResponse(c, pkghttp.TooManyRequestsError("too many requests, slow down"))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	var req models.GenerateStrategyRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.writeFrame(conn, resultFrame{Error: []pkghttp.ValidationError{{
			Code:    "ERR_UNKNOWN",
			Message: "invalid request frame",
		}}})
		return nil
	}

	ctx := c.Request().Context()
	if errs := pkghttp.ValidateStruct(ctx, &req); errs != nil {
		h.metrics.RecordRequest("validation_error")
		h.writeFrame(conn, resultFrame{Error: errs})
		return nil
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.metrics.RecordRequest("validation_error")
		h.writeFrame(conn, resultFrame{Error: fieldErrors(err)})
		return nil
	}

	creds := credentials.Resolve(overridesFrom(&req), h.defaults)

	start := time.Now()
	resp, err := h.advisor.AdviseStream(ctx, domainReq, creds, func(stage string) {
		h.writeFrame(conn, stageFrame{Stage: stage})
	})
	if err != nil {
		h.metrics.RecordRequest("capability_error")
		appErr := h.mapCapabilityError(domainReq.Ticker, err)
		h.writeFrame(conn, resultFrame{Error: []*pkghttp.AppError{appErr}})
		return nil
	}

	h.metrics.RecordRequest("ok")
	h.metrics.RecordDecision(string(resp.SuggestedAction))
	h.audit(domainReq, resp, time.Since(start))

	h.writeFrame(conn, resultFrame{Result: resp})
	return nil
}

func (h *StrategyHandler) writeFrame(conn *websocket.Conn, v interface{}) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(v); err != nil {
		h.logger.Debug("websocket write failed", logger.Error(err))
	}
}
