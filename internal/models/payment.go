package models

// FeeBreakdown is one itemized line of a payment. It is a value
// snapshot of the fee's name and charged amount at collection time:
// later edits to the fee catalog must never alter historical receipts,
// so the line is copied at write time and never re-resolved.
type FeeBreakdown struct {
	FeeID  EntityID `json:"feeId"`
	Name   string   `json:"name"`
	Amount int      `json:"amount"`
}

// Payment records one collection event for a (house, year, month)
// period. Several partial payments may exist for the same period; they
// accumulate rather than overwrite.
type Payment struct {
	ID        EntityID       `json:"id"`
	HouseID   EntityID       `json:"houseId"`
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Amount    int            `json:"amount"`
	Breakdown []FeeBreakdown `json:"breakdown"`
	PayerName string         `json:"payerName"`
	Date      string         `json:"date"`
	Receiver  string         `json:"receiver"`
	// VoucherID is the human-facing folio printed on the receipt.
	VoucherID string `json:"voucherId"`
	Type      string `json:"type"`
}

// BreakdownTotal sums the breakdown line amounts.
func (p Payment) BreakdownTotal() int {
	total := 0
	for _, b := range p.Breakdown {
		total += b.Amount
	}
	return total
}
