package pricing

// Policy holds the storefront shipping policy in cents. Both values come from
// configuration and share the currency of catalog prices.
type Policy struct {
	FreeThresholdCents int
	FlatRateCents      int
}

// ShippingCost returns 0 once the subtotal reaches the free-shipping
// threshold, otherwise the flat rate.
func (p Policy) ShippingCost(subtotalCents int) int {
	if subtotalCents >= p.FreeThresholdCents {
		return 0
	}
	return p.FlatRateCents
}

// Total is the grand total: subtotal plus shipping.
func (p Policy) Total(subtotalCents, shippingCents int) int {
	return subtotalCents + shippingCents
}
