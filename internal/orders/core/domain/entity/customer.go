package entity

// CustomerProfile is the read-only snapshot returned by the customer
// service. It is fetched per request and never cached beyond what the
// customer client decides to do internally.
type CustomerProfile struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Surname                 string    `json:"surname"`
	Email                   string    `json:"email"`
	BillingAddresses        []Address `json:"billingAddresses"`
	ShippingAddresses       []Address `json:"shippingAddresses"`
	ActiveBillingAddressID  string    `json:"activeBillingAddressId"`
	ActiveShippingAddressID string    `json:"activeShippingAddressId"`
}

// FullName joins name and surname the way the notification templates expect.
func (c CustomerProfile) FullName() string {
	return c.Name + " " + c.Surname
}

type Address struct {
	ID          string `json:"id"`
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	AddressLine string `json:"addressLine"`
	ZipCode     string `json:"zipCode"`
}
