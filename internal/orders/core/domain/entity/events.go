package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is the denormalized snapshot published for the search
// indexer after a successful payment. It embeds redundant copies of the
// customer, address and item data so the consumer never has to join back
// into the owning services.
type OrderCreatedEvent struct {
	OrderID         string          `json:"orderId"`
	Reference       string          `json:"reference"`
	OrderDate       time.Time       `json:"orderDate"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress AddressInfo     `json:"shippingAddress"`
	BillingAddress  AddressInfo     `json:"billingAddress"`
	Items           []ItemInfo      `json:"items"`
}

type CustomerInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type AddressInfo struct {
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	ZipCode     string `json:"zipCode"`
}

type ItemInfo struct {
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	Manufacturer string          `json:"manufacturer"`
	CategoryID   int             `json:"categoryId"`
	Quantity     int             `json:"quantity"`
	BasePrice    decimal.Decimal `json:"basePrice"`
}

// OrderReceivedEvent feeds the notification service: enough data to render
// a confirmation email, independent of the search-index consumer.
type OrderReceivedEvent struct {
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Reference     string          `json:"reference"`
	PaymentMethod string          `json:"paymentMethod"`
	Items         []ItemInfo      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}
