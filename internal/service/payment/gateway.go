package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/kirinyoku/showtime/internal/domain"
)

type Charge struct {
	BookingID string
	Amount    int64
	Method    string
}

type Result struct {
	Status        domain.PaymentStatus
	TransactionID string
}

// Gateway charges a customer. A declined charge is a Result with status
// failed, not an error; errors mean the gateway could not be reached.
type Gateway interface {
	Charge(ctx context.Context, c Charge) (Result, error)
}

// SimulatedGateway approves every charge.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(context.Context, Charge) (Result, error) {
	return Result{Status: domain.PaymentSuccess, TransactionID: NewTransactionID()}, nil
}

// NewTransactionID returns "TXN" followed by 12 upper-case hex digits.
func NewTransactionID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return "TXN" + strings.ToUpper(hex.EncodeToString(b))
}
