package core

// # Error Codes Reference
//
// This file maps import errors to user-friendly messages with codes for
// support reference. Users quote the code; support staff look it up here.
//
// Typed errors are matched first (errors.As), then plain errors by
// case-insensitive substring.
//
// # Schema and Format Errors (SCH, FMT)
//
//	SCH001 - Header mismatch: the file header matches no layout of the format
//	         Action: Export the file again or pick the matching format
//	FMT001 - Unknown format: the requested or detected format does not exist
//	         Action: List formats with GET /api/formats
//
// # Ignored Rows (IGN)
//
//	IGN001 - Unsupported transaction type
//	IGN002 - Unsupported status
//
// # Rejected Rows (REJ)
//
//	REJ001 - Currency pair is not supported
//	REJ002 - A numeric field is negative
//	REJ003 - Quantity or price is zero
//	REJ004 - Fee or rebate currency is neither base nor quote
//	REJ005 - A cell could not be converted
//	REJ006 - Two columns of the row disagree about a currency
//
// # Internal (INT)
//
//	INT001 - Internal consistency failure; check the logs
//
// # File Errors (FILE001-FILE006)
//
// FILE003 is retired: invalid UTF-8 is replaced while reading, never reported.
//
//	FILE001 - File too large         Patterns: "file too large"
//	FILE002 - Invalid CSV            Patterns: "invalid csv"
//	FILE004 - No file                Patterns: "no file provided"
//	FILE005 - Empty file             Patterns: "empty file"
//	FILE006 - Unreadable upload form Patterns: "invalid upload form"
//
// # Import Errors (UPL)
//
//	UPL002 - System busy             Patterns: "too many concurrent imports"
//	UPL003 - Import result not found Patterns: "import not found"
//	UPL004 - Request cancelled       Patterns: "context canceled"
//	UPL005 - Request timeout         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests      Patterns: "rate limit"
//
// # Authentication (AUTH)
//
//	AUTH001 - Missing API key        Patterns: "missing api key"
//	AUTH002 - Invalid API key        Patterns: "invalid api key"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application logs for the
// original error when users report ERR000.

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

var (
	msgSchema = UserMessage{
		Message: "The file header does not match the selected format",
		Action:  "Export the file again or choose the matching format",
		Code:    "SCH001",
	}
	msgUnknownFormat = UserMessage{
		Message: "Unknown import format",
		Action:  "Check the list of supported formats",
		Code:    "FMT001",
	}
	msgUnsupportedType = UserMessage{
		Message: "Transaction type is not supported",
		Action:  "The row was skipped; no action is needed",
		Code:    "IGN001",
	}
	msgUnsupportedStatus = UserMessage{
		Message: "Transaction status is not supported",
		Action:  "Only completed transactions are imported",
		Code:    "IGN002",
	}
	msgPair = UserMessage{
		Message: "Currency pair is not supported",
		Action:  "Check the symbol column of the row",
		Code:    "REJ001",
	}
	msgNegative = UserMessage{
		Message: "A value can not be negative",
		Action:  "Correct the sign of the value",
		Code:    "REJ002",
	}
	msgZero = UserMessage{
		Message: "A quantity or price can not be zero",
		Action:  "Remove the row or correct the value",
		Code:    "REJ003",
	}
	msgFeeCurrency = UserMessage{
		Message: "Fee currency is neither base nor quote",
		Action:  "Check the fee and rebate currency columns",
		Code:    "REJ004",
	}
	msgField = UserMessage{
		Message: "A cell value could not be read",
		Action:  "Check the value in the named column",
		Code:    "REJ005",
	}
	msgMismatch = UserMessage{
		Message: "Currency columns of the row disagree",
		Action:  "Check that the row was not edited by hand",
		Code:    "REJ006",
	}
	msgInternal = UserMessage{
		Message: "The import stopped because of an internal error",
		Action:  "Please contact support with the error code",
		Code:    "INT001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps untyped error text (case-insensitive) to user messages.
// The first matching pattern wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the export into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV export to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload an export with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid upload form",
		msg: UserMessage{
			Message: "The upload form could not be read",
			Action:  "Send the export as a multipart field named file or as the raw request body",
			Code:    "FILE006",
		},
	},

	// Import errors
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "import not found",
		msg: UserMessage{
			Message: "Import result not found",
			Action:  "The result may have expired. Please import the file again",
			Code:    "UPL003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try importing a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// Authentication
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "API key not recognized",
			Action:  "Check the key or ask an administrator for a new one",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
//
// Example:
//
//	msg := MapError(&ZeroValueError{Field: "quantity"})
//	// msg.Code == "REJ003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTyped(err); ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// mapTyped checks the engine's error types, most severe first.
func mapTyped(err error) (UserMessage, bool) {
	var (
		internalErr   *InternalError
		schemaErr     *SchemaError
		unsupported   *UnsupportedError
		pairErr       *CurrencyPairError
		negativeErr   *NegativeValueError
		zeroErr       *ZeroValueError
		membershipErr *CurrencyMembershipError
		mismatchErr   *MismatchError
		fieldErr      *FieldError
	)

	switch {
	case errors.As(err, &internalErr):
		return msgInternal, true
	case errors.As(err, &schemaErr):
		return msgSchema, true
	case errors.Is(err, ErrUnknownFormat):
		return msgUnknownFormat, true
	case errors.As(err, &unsupported):
		if unsupported.What == "status type" {
			return msgUnsupportedStatus, true
		}
		return msgUnsupportedType, true
	case errors.As(err, &pairErr):
		return msgPair, true
	case errors.As(err, &negativeErr):
		return msgNegative, true
	case errors.As(err, &zeroErr):
		return msgZero, true
	case errors.As(err, &membershipErr):
		return msgFeeCurrency, true
	case errors.As(err, &mismatchErr):
		return msgMismatch, true
	case errors.As(err, &fieldErr):
		return msgField, true
	}
	return UserMessage{}, false
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
