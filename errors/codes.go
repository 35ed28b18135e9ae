package errors

// ErrorCode identifies an application error independent of its HTTP status
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL            ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT    ErrorCode = 1001
	ErrorCode_NOT_FOUND           ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED     ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED   ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD     ErrorCode = 1005
	ErrorCode_FAILED_PRECONDITION ErrorCode = 1006

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002

	// Meetings and commitments
	ErrorCode_MEETING_NOT_FOUND        ErrorCode = 3001
	ErrorCode_MEETING_SUBMIT_FAILED    ErrorCode = 3002
	ErrorCode_COMMITMENT_NOT_FOUND     ErrorCode = 3101
	ErrorCode_COMMITMENT_UPDATE_FAILED ErrorCode = 3102

	// Briefings and search
	ErrorCode_BRIEFING_STREAM_FAILED ErrorCode = 4001
	ErrorCode_SEARCH_FAILED          ErrorCode = 4101

	// Integration
	ErrorCode_BACKEND_UNAVAILABLE ErrorCode = 5001
	ErrorCode_BACKEND_REJECTED    ErrorCode = 5002
	ErrorCode_BACKEND_MALFORMED   ErrorCode = 5003
	ErrorCode_CACHE_FAILED        ErrorCode = 5101
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:              "UNSPECIFIED",
	ErrorCode_HTTP_OK:                  "HTTP_OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_PERMISSION_DENIED:        "PERMISSION_DENIED",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_FAILED_PRECONDITION:      "FAILED_PRECONDITION",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:        "MEETING_NOT_FOUND",
	ErrorCode_MEETING_SUBMIT_FAILED:    "MEETING_SUBMIT_FAILED",
	ErrorCode_COMMITMENT_NOT_FOUND:     "COMMITMENT_NOT_FOUND",
	ErrorCode_COMMITMENT_UPDATE_FAILED: "COMMITMENT_UPDATE_FAILED",
	ErrorCode_BRIEFING_STREAM_FAILED:   "BRIEFING_STREAM_FAILED",
	ErrorCode_SEARCH_FAILED:            "SEARCH_FAILED",
	ErrorCode_BACKEND_UNAVAILABLE:      "BACKEND_UNAVAILABLE",
	ErrorCode_BACKEND_REJECTED:         "BACKEND_REJECTED",
	ErrorCode_BACKEND_MALFORMED:        "BACKEND_MALFORMED",
	ErrorCode_CACHE_FAILED:             "CACHE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
