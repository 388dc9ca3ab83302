package api

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	"StratGen/internal/domain/repository"
	"StratGen/internal/domain/service"
	"StratGen/internal/service/ratelimit"
	pkghttp "StratGen/pkg/http"
	"StratGen/pkg/logger"
)

// RateLimitSettings controls the per-client token bucket on the generate
// endpoints. Disabled buckets admit everything.
type RateLimitSettings struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// StrategyHandler serves the strategy generation endpoints.
type StrategyHandler struct {
	advisor   service.StreamingAdvisor
	recorder  AuditRecorder
	limiter   *ratelimit.Limiter
	metrics   repository.Metrics
	logger    *logger.Logger
	defaults  credentials.Defaults
	rateLimit RateLimitSettings
}

// AuditRecorder is the slice of the audit pipeline the handler needs.
type AuditRecorder interface {
	Enabled() bool
	Record(ctx context.Context, ev *models.StrategyEvent) error
}

// NewStrategyHandler creates the strategy HTTP handler.
func NewStrategyHandler(
	advisor service.StreamingAdvisor,
	recorder AuditRecorder,
	limiter *ratelimit.Limiter,
	metrics repository.Metrics,
	log *logger.Logger,
	defaults credentials.Defaults,
	rateLimit RateLimitSettings,
) *StrategyHandler {
	return &StrategyHandler{
		advisor:   advisor,
		recorder:  recorder,
		limiter:   limiter,
		metrics:   metrics,
		logger:    log,
		defaults:  defaults,
		rateLimit: rateLimit,
	}
}

// RegisterRoutes registers strategy routes on the echo instance.
func (h *StrategyHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.POST("/generate-strategy", h.GenerateStrategy)
	e.GET("/generate-strategy/stream", h.GenerateStrategyStream)
}

// Health reports process liveness.
func (h *StrategyHandler) Health(c echo.Context) error {
	return c.JSON(200, map[string]string{
		"status":  "healthy",
		"service": "strategy-generator",
	})
}

// GenerateStrategy handles POST /generate-strategy.
func (h *StrategyHandler) GenerateStrategy(c echo.Context) error {
	if !h.allow(c.RealIP()) {
		h.metrics.RecordRequest("rate_limited")
		return pkghttp.AppErrorResponse(c, pkghttp.TooManyRequestsError("too many requests, slow down"))
	}

	var req models.GenerateStrategyRequest
	if errs := pkghttp.ReadAndValidateRequest(c, &req); errs != nil {
		h.metrics.RecordRequest("validation_error")
		return pkghttp.BadRequestResponse(c, errs)
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.metrics.RecordRequest("validation_error")
		return pkghttp.BadRequestResponse(c, fieldErrors(err))
	}

	creds := credentials.Resolve(overridesFrom(&req), h.defaults)
	h.logger.Debug("credentials resolved",
		logger.String("ticker", domainReq.Ticker),
		logger.String("credentials", creds.String()))

	start := time.Now()
	resp, err := h.advisor.Advise(c.Request().Context(), domainReq, creds)
	if err != nil {
		h.metrics.RecordRequest("capability_error")
		return pkghttp.AppErrorResponse(c, h.mapCapabilityError(domainReq.Ticker, err))
	}

	h.metrics.RecordRequest("ok")
	h.metrics.RecordDecision(string(resp.SuggestedAction))
	h.audit(domainReq, resp, time.Since(start))

	return c.JSON(200, resp)
}

// allow consults the rate limiter for the client key.
func (h *StrategyHandler) allow(key string) bool {
	if !h.rateLimit.Enabled {
		return true
	}
	return h.limiter.Allow(key, h.rateLimit.Capacity, h.rateLimit.RefillPerSec)
}

// audit emits the audit event off the request path. Audit failures are
// logged and never surface to the caller.
func (h *StrategyHandler) audit(req *models.StrategyRequest, resp *models.StrategyResponse, took time.Duration) {
	if h.recorder == nil || !h.recorder.Enabled() {
		return
	}
	ev := models.NewStrategyEvent(req, resp, took)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.recorder.Record(ctx, ev); err != nil {
			h.logger.Warn("audit record failed",
				logger.String("ticker", ev.Ticker),
				logger.Error(err))
		}
	}()
}

// mapCapabilityError translates advisor failures into wire errors. The
// underlying cause is logged here and never serialized to the client.
func (h *StrategyHandler) mapCapabilityError(ticker string, err error) *pkghttp.AppError {
	h.logger.Error("strategy generation failed",
		logger.String("ticker", ticker),
		logger.Error(err))

	if errors.Is(err, service.ErrCapabilityUnavailable) {
		return pkghttp.ServiceUnavailableError("ERR_CAPABILITY_UNAVAILABLE",
			"analysis capability is not configured, supply an API key or contact the operator")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pkghttp.GatewayTimeoutError("ERR_CAPABILITY_TIMEOUT",
			"analysis did not complete in time, try again")
	}
	return pkghttp.BadGatewayError("ERR_CAPABILITY_FAILED",
		"analysis failed, try again later")
}

// fieldErrors adapts a models.FieldError into the validation envelope.
func fieldErrors(err error) []pkghttp.ValidationError {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		ve := pkghttp.ValidationError{
			Code:    fe.Code,
			Field:   fe.Field,
			Message: fe.Error(),
		}
		if len(fe.Allowed) > 0 {
			ve.Params = map[string]interface{}{"options": fe.Allowed}
		}
		return []pkghttp.ValidationError{ve}
	}
	return []pkghttp.ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
}

// overridesFrom lifts the wire payload's credential fields into the
// resolver's override map. Pointers pass through untouched so absent and
// blank stay distinguishable.
func overridesFrom(req *models.GenerateStrategyRequest) credentials.Overrides {
	return credentials.Overrides{
		credentials.Tavily:       req.TavilyAPIKey,
		credentials.OpenAI:       req.OpenAIAPIKey,
		credentials.AlphaVantage: req.AlphaVantageAPIKey,
	}
}
