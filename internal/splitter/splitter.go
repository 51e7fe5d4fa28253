// Package splitter computes equal expense shares with exact conservation of
// the total amount.
package splitter

import (
	"github.com/shopspring/decimal"

	"simple-split/internal/util"
)

// minorUnit is the number of decimal places of the currency.
const minorUnit = 2

// Share is one participant's portion of an expense.
type Share struct {
	UserID int64
	Amount decimal.Decimal
}

// Split divides amount equally among the participants. The base share is the
// per-head amount floored to the currency's minor unit; the rounding remainder
// is handed out one cent at a time starting from the first participant. Shares
// always sum to amount exactly and never go negative, though a sub-cent split
// can leave trailing participants with a zero share.
func Split(amount decimal.Decimal, participantIDs []int64) ([]Share, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if len(participantIDs) == 0 {
		return nil, util.ErrInvalidInput
	}
	seen := make(map[int64]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		if _, ok := seen[id]; ok {
			return nil, util.ErrInvalidInput
		}
		seen[id] = struct{}{}
	}

	n := int64(len(participantIDs))
	base := amount.Div(decimal.NewFromInt(n)).RoundDown(minorUnit)
	remainder := amount.Sub(base.Mul(decimal.NewFromInt(n)))
	cent := decimal.New(1, -minorUnit)

	shares := make([]Share, 0, n)
	for _, id := range participantIDs {
		share := base
		if remainder.GreaterThanOrEqual(cent) {
			share = share.Add(cent)
			remainder = remainder.Sub(cent)
		}
		shares = append(shares, Share{UserID: id, Amount: share})
	}
	if remainder.IsPositive() {
		// Amounts finer than the minor unit leave a sub-cent residue.
		shares[0].Amount = shares[0].Amount.Add(remainder)
	}
	return shares, nil
}
