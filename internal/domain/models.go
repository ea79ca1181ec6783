package domain

type Product struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Category    string  `bson:"category" json:"category"`
	ImageURL    string  `bson:"image_url" json:"image_url"`
	Stock       int     `bson:"stock" json:"stock"`
	CreatedAt   string  `bson:"created_at" json:"created_at"`
}

// ProductFields carries the editable fields of a product. Writes are
// full-replace: every field is stored, there is no partial patch.
type ProductFields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

type CartItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt string     `bson:"updated_at" json:"updated_at"`
}

// CartLine is a cart item joined with its live product document.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderItem is the snapshot of a product taken at checkout time. Later
// price or name changes on the product never touch it.
type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Price       float64 `bson:"price" json:"price"`
}

// Order statuses written by the system. Admin status updates store the
// submitted string as-is.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Order struct {
	ID                string            `bson:"id" json:"id"`
	UserID            string            `bson:"user_id" json:"user_id"`
	Items             []OrderItem       `bson:"items" json:"items"`
	TotalAmount       float64           `bson:"total_amount" json:"total_amount"`
	Status            string            `bson:"status" json:"status"`
	PaymentStatus     string            `bson:"payment_status" json:"payment_status"`
	RazorpayOrderID   string            `bson:"razorpay_order_id" json:"razorpay_order_id"`
	RazorpayPaymentID string            `bson:"razorpay_payment_id" json:"razorpay_payment_id"`
	ShippingAddress   map[string]string `bson:"shipping_address" json:"shipping_address"`
	CreatedAt         string            `bson:"created_at" json:"created_at"`
}
