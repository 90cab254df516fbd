package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used throughout the code base.
const (
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeTimeout      = ErrCodeTimeout
)

// Molecule graph Error Codes
const (
	ErrCodeGraphInvalid          ErrorCode = "MOL_001"
	ErrCodeAtomNotFound          ErrorCode = "MOL_002"
	ErrCodeAtomAmbiguous         ErrorCode = "MOL_003"
	ErrCodeAtomIdentifierMissing ErrorCode = "MOL_004"
	ErrCodeBondInvalid           ErrorCode = "MOL_005"
)

// Reaction Error Codes
const (
	ErrCodeReactionDocumentInvalid ErrorCode = "RXN_001"
	ErrCodeReactionIndexOutOfRange ErrorCode = "RXN_002"
	ErrCodeReactionIdentifiers     ErrorCode = "RXN_003"
	ErrCodeReactionEmpty           ErrorCode = "RXN_004"
)

// Mapping Error Codes
const (
	ErrCodeTheoryUnsupported    ErrorCode = "MAP_001"
	ErrCodeKernelFailed         ErrorCode = "MAP_002"
	ErrCodeCycleSearchFailed    ErrorCode = "MAP_003"
	ErrCodeCycleIntractable     ErrorCode = "MAP_004"
	ErrCodePoolShutdownTimeout  ErrorCode = "MAP_005"
	ErrCodeReplicationFailed    ErrorCode = "MAP_006"
	ErrCodeKernelBudgetExceeded ErrorCode = "MAP_007"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeGraphInvalid:          http.StatusUnprocessableEntity,
	ErrCodeAtomNotFound:          http.StatusNotFound,
	ErrCodeAtomAmbiguous:         http.StatusConflict,
	ErrCodeAtomIdentifierMissing: http.StatusUnprocessableEntity,
	ErrCodeBondInvalid:           http.StatusUnprocessableEntity,

	ErrCodeReactionDocumentInvalid: http.StatusBadRequest,
	ErrCodeReactionIndexOutOfRange: http.StatusBadRequest,
	ErrCodeReactionIdentifiers:     http.StatusUnprocessableEntity,
	ErrCodeReactionEmpty:           http.StatusUnprocessableEntity,

	ErrCodeTheoryUnsupported:    http.StatusBadRequest,
	ErrCodeKernelFailed:         http.StatusInternalServerError,
	ErrCodeCycleSearchFailed:    http.StatusInternalServerError,
	ErrCodeCycleIntractable:     http.StatusInternalServerError,
	ErrCodePoolShutdownTimeout:  http.StatusGatewayTimeout,
	ErrCodeReplicationFailed:    http.StatusInternalServerError,
	ErrCodeKernelBudgetExceeded: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeGraphInvalid:          "invalid molecule graph",
	ErrCodeAtomNotFound:          "atom not found",
	ErrCodeAtomAmbiguous:         "atom identifier is ambiguous",
	ErrCodeAtomIdentifierMissing: "atom identifier missing",
	ErrCodeBondInvalid:           "invalid bond",

	ErrCodeReactionDocumentInvalid: "invalid reaction document",
	ErrCodeReactionIndexOutOfRange: "reaction index out of range",
	ErrCodeReactionIdentifiers:     "reaction atom identifiers are not unique",
	ErrCodeReactionEmpty:           "reaction has no reactants or products",

	ErrCodeTheoryUnsupported:    "unsupported matching theory",
	ErrCodeKernelFailed:         "isomorphism kernel failed",
	ErrCodeCycleSearchFailed:    "cycle search failed",
	ErrCodeCycleIntractable:     "cycle search is intractable",
	ErrCodePoolShutdownTimeout:  "worker pool did not terminate in time",
	ErrCodeReplicationFailed:    "mapping replication failed",
	ErrCodeKernelBudgetExceeded: "isomorphism kernel step budget exceeded",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
