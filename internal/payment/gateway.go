package payment

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Gateway is the remote payment-provider collaborator. CreateOrder opens a
// gateway-side order for a client payment attempt; VerifySignature checks
// the callback HMAC. The secret stays server-side; only the key id is ever
// handed to clients.
type Gateway interface {
	CreateOrder(amountMinorUnits int64, currency string) (string, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
}

type Razorpay struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewRazorpay(keyID, secret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

func (r *Razorpay) KeyID() string { return r.keyID }

// CreateOrder creates a capture-mode gateway order in minor currency units
// (paise for INR) and returns its id.
func (r *Razorpay) CreateOrder(amountMinorUnits int64, currency string) (string, error) {
	body, err := r.client.Order.Create(map[string]interface{}{
		"amount":          amountMinorUnits,
		"currency":        currency,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: no id in response")
	}
	return id, nil
}

func (r *Razorpay) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": gatewayPaymentID,
	}, signature, r.secret)
}
