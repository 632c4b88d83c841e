package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/services"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

var statusByCode = map[services.ErrorCode]int{
	services.ErrorInvalid:            http.StatusBadRequest,
	services.ErrorInvalidCredentials: http.StatusUnauthorized,
	services.ErrorNotApproved:        http.StatusForbidden,
	services.ErrorUsernameTaken:      http.StatusConflict,
	services.ErrorUnauthorized:       http.StatusForbidden,
	services.ErrorForbidden:          http.StatusForbidden,
	services.ErrorNotFound:           http.StatusNotFound,
	services.ErrorConflict:           http.StatusConflict,
	services.ErrorBadGateway:         http.StatusBadGateway,
	services.ErrorTooManyRequests:    http.StatusTooManyRequests,
}

var messageByCode = map[services.ErrorCode]string{
	services.ErrorInvalidCredentials: "auth.invalid_credentials",
	services.ErrorNotApproved:        "auth.not_approved",
	services.ErrorUsernameTaken:      "auth.username_taken",
}

// writeError maps a ServiceError to its status and a localized message.
// Anything else is an internal failure and gets logged.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	se, ok := services.AsServiceError(err)
	if !ok {
		rt.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "internal",
			"message": utils.T(locale, "error.internal"),
		})
		return
	}
	status, ok := statusByCode[se.Code]
	if !ok {
		status = http.StatusBadRequest
	}
	key, ok := messageByCode[se.Code]
	if !ok {
		key = "error." + string(se.Code)
	}
	writeJSON(w, status, map[string]string{
		"error":   string(se.Code),
		"message": utils.T(locale, key),
		"detail":  se.Message,
	})
}
