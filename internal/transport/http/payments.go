package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

// PaymentProcessor is the minimal interface the payment endpoints need.
type PaymentProcessor interface {
	CreatePayment(ctx context.Context, userID, orderID uuid.UUID, method string) (domain.Payment, error)
	GetPaymentStatus(ctx context.Context, userID, orderID uuid.UUID) (domain.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
}

// HandleCreatePayment serves POST /payments.
func HandleCreatePayment(svc PaymentProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		var req createPaymentRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidID, "invalid order id")
			return
		}

		payment, err := svc.CreatePayment(r.Context(), ident.UserID, orderID, req.Method)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPaymentResponse(payment))
	}
}

// HandlePaymentStatus serves GET /payments/{orderId}. Reading the status of
// an overdue pending payment transitions it to EXPIRED.
func HandlePaymentStatus(svc PaymentProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ident, ok := identityFromRequest(w, r)
		if !ok {
			return
		}

		orderID, ok := parsePaymentStatusPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		payment, err := svc.GetPaymentStatus(r.Context(), ident.UserID, orderID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPaymentResponse(payment))
	}
}

// HandleConfirmPayment serves POST /payments/{id}/confirm. In production the
// payment gateway webhook calls this; it is exposed for manual settlement.
func HandleConfirmPayment(svc PaymentProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		paymentID, ok := parseConfirmPaymentPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		payment, err := svc.ConfirmPayment(r.Context(), paymentID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPaymentResponse(payment))
	}
}

func parsePaymentStatusPath(path string) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "payments" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseConfirmPaymentPath(path string) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "payments" || parts[2] != "confirm" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type createPaymentRequest struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
}

type paymentResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	Amount    int64      `json:"amount"`
	Method    string     `json:"method"`
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	ExpiredAt time.Time  `json:"expired_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func toPaymentResponse(payment domain.Payment) paymentResponse {
	return paymentResponse{
		ID:        payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Reference: payment.Reference,
		Status:    string(payment.Status),
		ExpiredAt: payment.ExpiredAt,
		PaidAt:    payment.PaidAt,
	}
}
