// Package netting collapses a set of pending debts into the minimum
// equivalent obligations while preserving every user's net position.
package netting

import (
	"sort"

	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
)

// Epsilon below which a user's net position counts as settled. Keeps rounding
// noise from generating one-cent debts.
var Epsilon = decimal.New(1, -2) // 0.01

// Obligation is a synthesized debt: debtor pays creditor the amount.
type Obligation struct {
	DebtorID   int64
	CreditorID int64
	Amount     decimal.Decimal
}

type position struct {
	userID int64
	amount decimal.Decimal // remaining magnitude, always positive
}

// Simplify reduces the given pending debts to at most n-1 obligations for n
// users with a non-zero net position. The result is a function of net
// positions only, so running it on its own output reproduces the same
// obligations (netting is a fixed point on already-minimal state).
//
// Each round matches the largest-magnitude debtor against the
// largest-magnitude creditor for the smaller of the two magnitudes. Ties in
// magnitude are broken by ascending user ID, which makes the output
// deterministic.
func Simplify(debts []domain.Debt) []Obligation {
	net := make(map[int64]decimal.Decimal)
	for _, d := range debts {
		net[d.CreditorID] = netOf(net, d.CreditorID).Add(d.Amount)
		net[d.DebtorID] = netOf(net, d.DebtorID).Sub(d.Amount)
	}

	var debtors, creditors []position
	for userID, balance := range net {
		switch {
		case balance.GreaterThanOrEqual(Epsilon):
			creditors = append(creditors, position{userID: userID, amount: balance})
		case balance.Neg().GreaterThanOrEqual(Epsilon):
			debtors = append(debtors, position{userID: userID, amount: balance.Neg()})
		}
	}
	sortPositions(debtors)
	sortPositions(creditors)

	var obligations []Obligation
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]

		amount := debtor.amount
		if creditor.amount.LessThan(amount) {
			amount = creditor.amount
		}
		obligations = append(obligations, Obligation{
			DebtorID:   debtor.userID,
			CreditorID: creditor.userID,
			Amount:     amount,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)
		if debtor.amount.LessThan(Epsilon) {
			debtors = debtors[1:]
		}
		if creditor.amount.LessThan(Epsilon) {
			creditors = creditors[1:]
		}
		// A partial match can leave a remainder smaller than the next
		// position, so restore the largest-first order.
		sortPositions(debtors)
		sortPositions(creditors)
	}
	return obligations
}

// Matches reports whether the existing debts already equal the obligations,
// pairing and amount included. Used to detect the fixed point and skip a
// rewrite that would only churn rows.
func Matches(debts []domain.Debt, obligations []Obligation) bool {
	if len(debts) != len(obligations) {
		return false
	}
	used := make([]bool, len(debts))
	for _, o := range obligations {
		found := false
		for i, d := range debts {
			if used[i] {
				continue
			}
			if d.DebtorID == o.DebtorID && d.CreditorID == o.CreditorID && d.Amount.Equal(o.Amount) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func netOf(net map[int64]decimal.Decimal, userID int64) decimal.Decimal {
	if v, ok := net[userID]; ok {
		return v
	}
	return decimal.Zero
}

func sortPositions(positions []position) {
	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].amount.Equal(positions[j].amount) {
			return positions[i].userID < positions[j].userID
		}
		return positions[i].amount.GreaterThan(positions[j].amount)
	})
}
