package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (router *Router) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		router.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Upstream detail is
// logged, never exposed; clients get the generic message only.
func (router *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		router.logger.Warn("Invalid request",
			zap.String("uri", r.RequestURI),
			zap.String("field", validationErr.Field),
		)
		router.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Message,
			Code:  validationErr.Code,
		})
		return
	}

	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		router.logger.Error("Upstream failure",
			zap.String("uri", r.RequestURI),
			zap.String("service", upstreamErr.Service),
			zap.Error(err),
		)
		router.writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: upstreamErr.Message,
			Code:  upstreamErr.Code,
		})
		return
	}

	router.logger.Error("Request failed",
		zap.String("uri", r.RequestURI),
		zap.Error(err),
	)
	router.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Code:  apperrors.CodeAppError,
	})
}
