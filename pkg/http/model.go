package http

// APIResponse represents the standard envelope for non-2xx responses.
// Successful endpoint payloads are written raw, so clients get the
// documented body shape without wrapping.
type APIResponse struct {
	Status  int         `json:"status" example:"400"`
	Message string      `json:"message" example:"Bad Request"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"ticker_symbol"`
	Message string                 `json:"message,omitempty" example:"ticker_symbol is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
