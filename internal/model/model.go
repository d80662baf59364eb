package model

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	MirrorOK       = "ok"
	MirrorError    = "error"
	MirrorDisabled = "disabled"

	DetailInvalidJSON      = "Invalid JSON payload"
	DetailMethodNotAllowed = "Method Not Allowed"
	DetailInternalError    = "Internal Server Error"
	DetailPayloadTooLarge  = "Payload Too Large"
)

type Response struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Mirror string `json:"mirror"`
}
