package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
	"obrafacil-backend/internal/service"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Status  bool   `json:"status"`
	Body    any    `json:"body,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int32 `json:"total,omitempty"`
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode reads a JSON body into dst and runs its validate tags.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("malformed JSON body: %v", err)
	}
	return validate.Struct(dst)
}

func writeJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, code int, body any) {
	writeJSON(w, code, Response{Status: true, Body: body})
}

func writeList(w http.ResponseWriter, body any, total int32) {
	writeJSON(w, http.StatusOK, Response{Status: true, Body: body, Total: &total})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	var terr *domain.TransitionError
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, errBadRequest),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrInvalidEquipment),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPaymentStatus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrEquipmentNotFound),
		errors.Is(err, service.ErrContractNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStatusUnchanged),
		errors.Is(err, service.ErrEquipmentInUse),
		errors.Is(err, service.ErrOrderExists),
		errors.Is(err, service.ErrEquipmentExists):
		return http.StatusConflict
	case errors.As(err, &terr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// writeError replies with the mapped status. Internal errors only expose the
// failed action, the rest of the chain goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msg = validationMessage(verrs)
	}
	if code == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg, _, _ = strings.Cut(msg, ":")
	}
	writeJSON(w, code, Response{Status: false, Message: msg})
}
