package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"luxejewel/internal/domain"
	"luxejewel/internal/services"
	"luxejewel/internal/store/storetest"
)

type orderFixture struct {
	carts   *storetest.Carts
	prods   *storetest.Products
	orders  *storetest.Orders
	gateway *storetest.Gateway
	cartSvc *services.CartService
	svc     *services.OrderService
}

func newOrderFixture(seed ...domain.Product) *orderFixture {
	f := &orderFixture{
		carts:   storetest.NewCarts(),
		prods:   storetest.NewProducts(seed...),
		orders:  storetest.NewOrders(),
		gateway: storetest.NewGateway(),
	}
	f.cartSvc = services.NewCartService(f.carts, f.prods)
	f.svc = services.NewOrderService(f.carts, f.prods, f.orders, f.gateway)
	return f
}

var shipping = map[string]string{"line1": "12 MG Road", "city": "Bengaluru", "pincode": "560001"}

func TestCreateOrderEmptyCartBadRequest(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), "u1", shipping)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateOrderInsufficientStockBadRequest(t *testing.T) {
	f := newOrderFixture(prod("p1", "Moonstone Cocktail Ring", "Rings", 4599, 1))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 3))

	_, err := f.svc.Create(ctx, "u1", shipping)
	require.ErrorIs(t, err, domain.ErrBadRequest)
	require.Contains(t, err.Error(), "Moonstone Cocktail Ring")
	require.Empty(t, f.gateway.CreatedAmounts(), "no gateway order on failed pre-check")
}

func TestCreateOrderVanishedProductBadRequest(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 5))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	require.NoError(t, f.prods.Delete(ctx, "p1"))

	_, err := f.svc.Create(ctx, "u1", shipping)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

// Worked example from the order workflow: two units at 100 each.
func TestCheckoutAndVerifiedPayment(t *testing.T) {
	f := newOrderFixture(prod("pA", "Crystal Stud Earrings", "Earrings", 100, 10))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "pA", 2))

	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)
	require.Equal(t, 200.0, checkout.Amount)
	require.Equal(t, "INR", checkout.Currency)
	require.Equal(t, "rzp_test_key", checkout.KeyID)
	require.Equal(t, []int64{20000}, f.gateway.CreatedAmounts(), "gateway order in minor units")

	order, err := f.orders.Get(ctx, checkout.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPending, order.Status)
	require.Equal(t, domain.PaymentPending, order.PaymentStatus)
	require.Equal(t, checkout.RazorpayOrderID, order.RazorpayOrderID)

	err = f.svc.VerifyPayment(ctx, "u1", checkout.RazorpayOrderID, "pay_001", "valid-signature", checkout.OrderID)
	require.NoError(t, err)

	order, err = f.orders.Get(ctx, checkout.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderConfirmed, order.Status)
	require.Equal(t, domain.PaymentCompleted, order.PaymentStatus)
	require.Equal(t, "pay_001", order.RazorpayPaymentID)

	p, err := f.prods.Get(ctx, "pA")
	require.NoError(t, err)
	require.Equal(t, 8, p.Stock, "stock decremented by ordered quantity")

	cart, err := f.carts.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, cart, "cart deleted after verified payment")
}

func TestOrderTotalImmuneToLaterPriceChange(t *testing.T) {
	f := newOrderFixture(prod("p1", "Vintage Rose Ring", "Rings", 2799, 10))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 2))
	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	// Admin repricing after checkout must not touch the snapshot.
	require.NoError(t, f.prods.Update(ctx, "p1", domain.ProductFields{
		Name: "Vintage Rose Ring", Price: 9999, Category: "Rings", Stock: 10,
	}))

	order, err := f.orders.Get(ctx, checkout.OrderID)
	require.NoError(t, err)
	require.Equal(t, 5598.0, order.TotalAmount)
	require.Equal(t, 2799.0, order.Items[0].Price)
	require.Equal(t, "Vintage Rose Ring", order.Items[0].ProductName)
}

func TestVerifyPaymentBadSignatureMarksFailed(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 5))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	err = f.svc.VerifyPayment(ctx, "u1", checkout.RazorpayOrderID, "pay_001", "forged", checkout.OrderID)
	require.ErrorIs(t, err, domain.ErrBadRequest)

	order, err := f.orders.Get(ctx, checkout.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentFailed, order.PaymentStatus)
	require.Equal(t, domain.OrderPending, order.Status)

	// Stock untouched, cart retained.
	p, err := f.prods.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 5, p.Stock)
	cart, err := f.carts.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cart)
}

// Documented race: there is no idempotency guard, so a replayed valid
// callback decrements stock a second time.
func TestDoubleVerifyDecrementsTwice(t *testing.T) {
	f := newOrderFixture(prod("p1", "Charm Bracelet Set", "Bracelets", 1799, 10))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 2))
	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyPayment(ctx, "u1", checkout.RazorpayOrderID, "pay_001", "valid-signature", checkout.OrderID))
	require.NoError(t, f.svc.VerifyPayment(ctx, "u1", checkout.RazorpayOrderID, "pay_001", "valid-signature", checkout.OrderID))

	p, err := f.prods.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 6, p.Stock)
}

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 5))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	owner := &domain.User{ID: "u1"}
	stranger := &domain.User{ID: "u2"}
	admin := &domain.User{ID: "u3", IsAdmin: true}

	_, err = f.svc.Get(ctx, checkout.OrderID, owner)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, checkout.OrderID, stranger)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(ctx, checkout.OrderID, admin)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "missing", owner)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersScope(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 50))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	_, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	require.NoError(t, f.cartSvc.Add(ctx, "u2", "p1", 1))
	_, err = f.svc.Create(ctx, "u2", shipping)
	require.NoError(t, err)

	own, err := f.svc.List(ctx, &domain.User{ID: "u1"})
	require.NoError(t, err)
	require.Len(t, own, 1)

	all, err := f.svc.List(ctx, &domain.User{ID: "root", IsAdmin: true})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSetStatusStoresFreeText(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 5))
	ctx := context.Background()

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	checkout, err := f.svc.Create(ctx, "u1", shipping)
	require.NoError(t, err)

	// Status is stored as submitted; no enum validation at this boundary.
	require.NoError(t, f.svc.SetStatus(ctx, checkout.OrderID, "on-hold"))
	order, err := f.orders.Get(ctx, checkout.OrderID)
	require.NoError(t, err)
	require.Equal(t, "on-hold", order.Status)

	require.ErrorIs(t, f.svc.SetStatus(ctx, "missing", "shipped"), domain.ErrNotFound)
}

func TestCreateOrderGatewayFailurePropagates(t *testing.T) {
	f := newOrderFixture(prod("p1", "Tennis Bracelet", "Bracelets", 3899, 5))
	ctx := context.Background()
	f.gateway.FailCreate = true

	require.NoError(t, f.cartSvc.Add(ctx, "u1", "p1", 1))
	_, err := f.svc.Create(ctx, "u1", shipping)
	require.Error(t, err)

	// No order persisted when the gateway call fails.
	all, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
