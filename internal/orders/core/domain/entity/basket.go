package entity

import "github.com/shopspring/decimal"

// Basket is the current basket contents as reported by the basket service.
type Basket struct {
	CustomerID string       `json:"customerId"`
	Items      []BasketItem `json:"items"`
}

type BasketItem struct {
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	Manufacturer string          `json:"manufacturer"`
	CategoryID   int             `json:"categoryId"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	Quantity     int             `json:"quantity"`
}
