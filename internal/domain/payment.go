package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

type PaymentMethod string

const (
	PaymentMethodQRIS         PaymentMethod = "QRIS"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "E_WALLET"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodQRIS:         {},
	PaymentMethodBankTransfer: {},
	PaymentMethodEWallet:      {},
}

func ToPaymentMethod(s string) (PaymentMethod, bool) {
	method := PaymentMethod(s)
	_, ok := validPaymentMethods[method]
	return method, ok
}

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodQRIS, PaymentMethodBankTransfer, PaymentMethodEWallet}
}

// Payment is the 1:1 companion of an order. It starts PENDING and ends in
// exactly one of SUCCESS, FAILED or EXPIRED.
type Payment struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Amount    int64
	Method    PaymentMethod
	Reference string
	Status    PaymentStatus
	ExpiredAt time.Time
	PaidAt    *time.Time
	CreatedAt time.Time
}
