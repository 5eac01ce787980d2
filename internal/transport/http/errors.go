package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dandy22/Arenaku/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthenticated    = "unauthenticated"
	codeForbiddenRole      = "forbidden_role"
	codeInvalidInterval    = "invalid_interval"
	codeDuplicateInCart    = "duplicate_in_cart"
	codeSlotTaken          = "slot_taken"
	codeNotAuthorized      = "not_authorized"
	codeEmptyCart          = "empty_cart"
	codeMissingField       = "missing_required_field"
	codeInvalidMethod      = "invalid_payment_method"
	codePaymentExists      = "payment_already_exists"
	codeInvalidOrderState  = "invalid_order_state"
	codeAlreadyFinalized   = "payment_already_finalized"
	codeFieldNameRequired  = "field_name_required"
	codeInvalidPrice       = "invalid_price"
	codeInvalidID          = "invalid_id"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps a service error to an HTTP response. Conflict and
// authorization failures are expected outcomes here, not faults.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		orderState *domain.InvalidOrderStateError
		finalized  *domain.AlreadyFinalizedError
	)

	switch {
	case errors.Is(err, domain.ErrForbiddenRole):
		writeError(w, http.StatusForbidden, codeForbiddenRole, err.Error())
	case errors.Is(err, domain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, codeInvalidInterval, err.Error())
	case errors.Is(err, domain.ErrDuplicateInCart):
		writeError(w, http.StatusConflict, codeDuplicateInCart, err.Error())
	case errors.Is(err, domain.ErrSlotTaken):
		writeError(w, http.StatusConflict, codeSlotTaken, err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, codeNotAuthorized, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, codeEmptyCart, err.Error())
	case errors.Is(err, domain.ErrMissingCustomerInfo):
		writeError(w, http.StatusBadRequest, codeMissingField, err.Error())
	case errors.Is(err, domain.ErrInvalidMethod):
		writeError(w, http.StatusBadRequest, codeInvalidMethod, err.Error())
	case errors.Is(err, domain.ErrPaymentExists):
		writeError(w, http.StatusConflict, codePaymentExists, err.Error())
	case errors.Is(err, domain.ErrFieldNameRequired):
		writeError(w, http.StatusBadRequest, codeFieldNameRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrFieldNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.As(err, &orderState):
		writeError(w, http.StatusConflict, codeInvalidOrderState, err.Error())
	case errors.As(err, &finalized):
		writeError(w, http.StatusConflict, codeAlreadyFinalized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
