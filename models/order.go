package models

import "time"

// OrderStatus values are the persisted contract shared with existing
// clients; do not rename them.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderItem is a snapshot of the product at order-creation time. Catalog
// edits after checkout never change it.
type OrderItem struct {
	RecordID  uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string `gorm:"index;not null" json:"-"`
	ProductID string `gorm:"not null" json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
	ImageURL  string `json:"imageUrl"`
}

type Order struct {
	ID                string      `gorm:"primaryKey" json:"id"`
	UserID            string      `gorm:"index;not null" json:"userId"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount       int         `gorm:"not null" json:"totalAmount"`
	Status            OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Date              time.Time   `gorm:"index" json:"date"`
	PaymentMethod     string      `gorm:"type:varchar(10)" json:"paymentMethod"`
	ShippingAddress   string      `gorm:"not null" json:"shippingAddress"`
	Notes             string      `json:"notes,omitempty"`
	PrescriptionImage string      `json:"prescriptionImage,omitempty"`
	DeliveryAgentID   string      `gorm:"index" json:"deliveryAgentId,omitempty"`
}

// Terminal reports whether no further transition is defined from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}
