package types

// DeliveryAddress is the denormalized address snapshot carried on orders,
// audit rows, and their response views.
type DeliveryAddress struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Barangay    string `json:"barangay"`
	City        string `json:"city"`
	Province    string `json:"province"`
}
