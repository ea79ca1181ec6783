package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"luxejewel/internal/domain"
	"luxejewel/internal/payment"
)

// Currency is fixed; there is no multi-currency support.
const Currency = "INR"

type OrderService struct {
	Carts   CartStore
	Prods   ProductStore
	Orders  OrderStore
	Gateway payment.Gateway
}

func NewOrderService(carts CartStore, prods ProductStore, orders OrderStore, gw payment.Gateway) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders, Gateway: gw}
}

// Checkout is what the client needs to open the payment widget. The
// gateway secret is never part of it.
type Checkout struct {
	OrderID         string  `json:"order_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	KeyID           string  `json:"key_id"`
}

// Create converts the user's cart into a pending order backed by a gateway
// order. Stock is pre-checked per line but not reserved: no lock is held,
// and a concurrent checkout can still win the same units.
func (s *OrderService) Create(ctx context.Context, userID string, shipping map[string]string) (*Checkout, error) {
	cart, err := s.Carts.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrBadRequest)
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, it := range cart.Items {
		p, err := s.Prods.Get(ctx, it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s no longer available", domain.ErrBadRequest, it.ProductID)
		}
		if err != nil {
			return nil, err
		}
		if p.Stock < it.Quantity {
			return nil, fmt.Errorf("%w: product %s out of stock", domain.ErrBadRequest, p.Name)
		}
		// Snapshot name and price now; later product edits must not
		// change this order.
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			Price:       p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}

	gatewayOrderID, err := s.Gateway.CreateOrder(int64(math.Round(total*100)), Currency)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentPending,
		RazorpayOrderID: gatewayOrderID,
		ShippingAddress: shipping,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	return &Checkout{
		OrderID:         order.ID,
		RazorpayOrderID: gatewayOrderID,
		Amount:          total,
		Currency:        Currency,
		KeyID:           s.Gateway.KeyID(),
	}, nil
}

// VerifyPayment settles the gateway callback. A bad signature and a
// storage error mid-settlement are treated the same way: the order is
// marked payment-failed and the caller gets a BadRequest.
//
// There is no idempotency guard: a second call with a valid signature
// decrements stock again. Stock updates are N independent $inc operations,
// so a crash mid-loop leaves partial decrements applied.
func (s *OrderService) VerifyPayment(ctx context.Context, userID, gatewayOrderID, gatewayPaymentID, signature, orderID string) error {
	if err := s.settle(ctx, userID, gatewayOrderID, gatewayPaymentID, signature, orderID); err != nil {
		_ = s.Orders.MarkPaymentFailed(ctx, orderID)
		return fmt.Errorf("%w: payment verification failed", domain.ErrBadRequest)
	}
	return nil
}

func (s *OrderService) settle(ctx context.Context, userID, gatewayOrderID, gatewayPaymentID, signature, orderID string) error {
	if !s.Gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return errors.New("invalid signature")
	}
	if err := s.Orders.MarkPaid(ctx, orderID, gatewayPaymentID); err != nil {
		return err
	}
	order, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	for _, it := range order.Items {
		if err := s.Prods.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return s.Carts.DeleteByUser(ctx, userID)
}

// List returns the caller's orders, or every order for admins, newest
// first.
func (s *OrderService) List(ctx context.Context, u *domain.User) ([]domain.Order, error) {
	if u.IsAdmin {
		return s.Orders.ListAll(ctx)
	}
	return s.Orders.ListByUser(ctx, u.ID)
}

// Get returns an order the caller owns, or any order for admins.
func (s *OrderService) Get(ctx context.Context, id string, u *domain.User) (*domain.Order, error) {
	order, err := s.Orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != u.ID && !u.IsAdmin {
		return nil, fmt.Errorf("%w: not your order", domain.ErrForbidden)
	}
	return order, nil
}

// SetStatus stores the submitted status string as-is; values are not
// checked against an enum.
func (s *OrderService) SetStatus(ctx context.Context, id, status string) error {
	return s.Orders.SetStatus(ctx, id, status)
}
