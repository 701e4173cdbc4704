package web

// errors.go turns handler errors into API error responses.
//
// The technical error is logged with the request ID; the client gets the
// coded message from core.MapError. The status code follows from the code so
// every handler reports the same failure the same way.

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/tradeimport/internal/core"
	"github.com/JonMunkholm/tradeimport/internal/logging"
	"github.com/JonMunkholm/tradeimport/internal/web/middleware"
)

// statusByCode maps error codes to HTTP statuses. Codes not listed are 500.
var statusByCode = map[string]int{
	"SCH001":  http.StatusUnprocessableEntity,
	"FMT001":  http.StatusNotFound,
	"FILE001": http.StatusRequestEntityTooLarge,
	"FILE002": http.StatusBadRequest,
	"FILE004": http.StatusBadRequest,
	"FILE005": http.StatusBadRequest,
	"FILE006": http.StatusBadRequest,
	"UPL002":  http.StatusTooManyRequests,
	"UPL003":  http.StatusNotFound,
	"UPL004":  http.StatusBadRequest,
	"UPL005":  http.StatusServiceUnavailable,
	"RATE001": http.StatusTooManyRequests,
}

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	return statusForCode(core.MapError(err).Code)
}

func statusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// bodyLimitError rewrites a body limit hit anywhere in err's chain into a
// "file too large" error.
func bodyLimitError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("file too large: limit is %d bytes: %w", mbe.Limit, err)
	}
	return err
}

// respondError logs err and writes its coded message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	uerr := core.NewUserError(bodyLimitError(err))
	msg := uerr.User
	status := statusForCode(msg.Code)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", uerr.Technical.Error(),
	}
	if status >= http.StatusInternalServerError || !core.IsUserFacing(uerr.Technical) {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "5")
	}
	middleware.WriteError(w, status, msg)
}
