package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "server takes too long to respond"
	ErrClientBerichtNotFound               = "the requested bericht does not exist"
	ErrClientNotAQuestionnaireResponse     = "the payload must contain a QuestionnaireResponse resource"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed         = "validation failed"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"
	ErrDevServerDeadlineExceeded   = "the server could not finish processing in time"
	ErrDevMissingRequestID         = "request id not found in request context"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"

	ErrDevBerichtGuardRejected = "input is missing a QuestionnaireResponse or carries the wrong resourceType"
	ErrDevBerichtNotFound      = "bericht document not found in archive"
	ErrDevArchiveInsert        = "failed to insert bericht document into archive"
	ErrDevArchiveFind          = "failed to find bericht document in archive"
	ErrDevPublishBericht       = "failed to publish bericht.assembled event"

	ErrDevFhirGetResource            = "failed to get FHIR %s from the FHIR server"
	ErrDevFhirDecodeResourceResponse = "failed to decode FHIR %s response from the FHIR server"
)
