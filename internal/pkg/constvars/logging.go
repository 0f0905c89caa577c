package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingBerichtIDKey   = "bericht_id"
	LoggingBundleIDKey    = "bundle_identifier"
	LoggingResourceKey    = "resource"
	LoggingEntryCountKey  = "entry_count"
	LoggingObservationKey = "observation_id"

	LoggingQuestionnaireResponseIDKey = "questionnaire_response_id"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
)

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)
