package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
	CodeBodyTooLarge     = "BODY_TOO_LARGE"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)
