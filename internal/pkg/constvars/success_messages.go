package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Bericht messages
	CreateBerichtSuccessMessage = "bericht bundle assembled successfully"
	FindBerichtSuccessMessage   = "get bericht successfully"
	HealthCheckSuccessMessage   = "service is healthy"
)
