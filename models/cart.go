package models

import "time"

// CartItem carries the product snapshot taken at add-to-cart time.
// Checkout freezes these fields into the order without re-reading the
// catalog.
type CartItem struct {
	ProductID            string `json:"productId"`
	Name                 string `json:"name"`
	Price                int    `json:"price"`
	Quantity             int    `json:"quantity"`
	Category             string `json:"category"`
	ImageURL             string `json:"imageUrl"`
	RequiresPrescription bool   `json:"requiresPrescription"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total is the sum of line items, before the delivery fee.
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}

// NeedsPrescription reports whether any line item is prescription-only.
func (c *Cart) NeedsPrescription() bool {
	for _, item := range c.Items {
		if item.RequiresPrescription {
			return true
		}
	}
	return false
}
