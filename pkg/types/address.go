package types

import "strings"

// ShippingAddress is the snapshot captured once per checkout attempt. It is
// stored as a jsonb blob on the order and never mutated after creation.
type ShippingAddress struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Street           string  `json:"street"`
	StreetComplement *string `json:"street_complement,omitempty"`
	PostalCode       string  `json:"postal_code"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
	Phone            string  `json:"phone"`
}

// Complete reports whether every required field carries a value. Street
// complement is the only optional field.
func (a ShippingAddress) Complete() bool {
	required := []string{
		a.FirstName,
		a.LastName,
		a.Street,
		a.PostalCode,
		a.City,
		a.Country,
		a.Phone,
	}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
