package cart

// TransportFee is the flat delivery fee charged on every order regardless
// of destination or subtotal. A retired region-based fee table used to live
// here; the flat fee is the current canonical behavior.
const TransportFee float64 = 8

// Totals is the derived pricing of a cart.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	TransportFee float64 `json:"transportFee"`
	Total        float64 `json:"total"`
}

// Subtotal sums unit price times quantity over all line items.
func Subtotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalsWithTransport computes subtotal, flat transport fee and total for
// the given line items.
func TotalsWithTransport(items []Item) Totals {
	return TotalsForSubtotal(Subtotal(items))
}

// TotalsForSubtotal derives the fee and total from an already computed
// subtotal.
func TotalsForSubtotal(subtotal float64) Totals {
	return Totals{
		Subtotal:     subtotal,
		TransportFee: TransportFee,
		Total:        subtotal + TransportFee,
	}
}
