/*
billing.go - Total cost calculation

PURPOSE:
  Computes the total amount owed for a reservation:

    days(checkIn, checkOut) × pricePerDay
      + sum of itemized expenses
      + the two legacy flat fees (vet, grooming)

  This is the ONLY place a total is computed. A duplicated formula
  anywhere else in the repository is a bug, not an alternate design.

PRECISION:
  All money is decimal.Decimal in a single currency unit. No rounding is
  performed here; callers format for display.
*/
package booking

import "github.com/shopspring/decimal"

// TotalCost returns the total amount owed for a reservation. A stay with
// no expenses and zero legacy fees reduces to pure day-rate billing.
// A malformed range contributes zero stay days.
func TotalCost(r Reservation) decimal.Decimal {
	days := decimal.NewFromInt(int64(r.StayDays()))
	total := r.PricePerDay.Mul(days)
	for _, e := range r.Expenses {
		total = total.Add(e.Amount)
	}
	total = total.Add(r.VetFee)
	total = total.Add(r.GroomingFee)
	return total
}

// InvoiceLine is one row of an itemized invoice.
type InvoiceLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the itemized breakdown of a reservation's total. The Total
// field always equals TotalCost(r); Itemize exists for display only and
// delegates the arithmetic.
type Invoice struct {
	ReservationID string          `json:"reservation_id"`
	Lines         []InvoiceLine   `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}

// Itemize builds the invoice breakdown for a reservation.
func Itemize(r Reservation) Invoice {
	days := r.StayDays()
	lines := []InvoiceLine{
		{
			Description: "boarding",
			Amount:      r.PricePerDay.Mul(decimal.NewFromInt(int64(days))),
		},
	}
	for _, e := range r.Expenses {
		lines = append(lines, InvoiceLine{Description: e.Description, Amount: e.Amount})
	}
	if !r.VetFee.IsZero() {
		lines = append(lines, InvoiceLine{Description: "vet fee", Amount: r.VetFee})
	}
	if !r.GroomingFee.IsZero() {
		lines = append(lines, InvoiceLine{Description: "grooming fee", Amount: r.GroomingFee})
	}
	return Invoice{
		ReservationID: r.ID,
		Lines:         lines,
		Total:         TotalCost(r),
	}
}
