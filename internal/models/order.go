package models

import "time"

// OrderStatus is the lifecycle state of an order. Orders are created
// pending; transitions happen outside this service.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an immutable record produced by checkout.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderNumber     string      `json:"order_number" gorm:"uniqueIndex;type:varchar(12)"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingZip     string      `json:"shipping_zip"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem is one line of an order. Price and VendorID are snapshots
// taken at checkout, decoupled from later product changes. VendorID is
// denormalized so vendor dashboards never need a live join through Product.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	VendorID  string  `json:"vendor_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price at order time
}
