package app

import (
	"fmt"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

// PaymentReference builds the opaque token handed to the payer. QRIS tokens
// carry a timestamp so each payment window gets a fresh code; transfer and
// e-wallet tokens only encode the destination. Nothing else parses these.
func PaymentReference(orderID uuid.UUID, amount int64, method domain.PaymentMethod, now time.Time) string {
	if method == domain.PaymentMethodQRIS {
		return fmt.Sprintf("QRIS-%s-%d-%d", orderID, amount, now.UnixMilli())
	}
	return fmt.Sprintf("%s-%s-%d", method, orderID, amount)
}
