package netting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-split/internal/domain"
)

func pendingDebt(debtorID, creditorID int64, amount string) domain.Debt {
	return domain.Debt{
		DebtorID:   debtorID,
		CreditorID: creditorID,
		Amount:     decimal.RequireFromString(amount),
		Status:     domain.DebtStatusPending,
	}
}

// netPositions aggregates creditor-minus-debtor totals per user.
func netPositions(debts []domain.Debt) map[int64]decimal.Decimal {
	net := make(map[int64]decimal.Decimal)
	for _, d := range debts {
		net[d.CreditorID] = net[d.CreditorID].Add(d.Amount)
		net[d.DebtorID] = net[d.DebtorID].Sub(d.Amount)
	}
	return net
}

func obligationsAsDebts(obligations []Obligation) []domain.Debt {
	debts := make([]domain.Debt, 0, len(obligations))
	for _, o := range obligations {
		debts = append(debts, domain.Debt{
			DebtorID:   o.DebtorID,
			CreditorID: o.CreditorID,
			Amount:     o.Amount,
			Status:     domain.DebtStatusPending,
		})
	}
	return debts
}

func TestSimplifyMutualDebtsCollapseToOne(t *testing.T) {
	// A owes B 100.00 and B owes A 40.00: one debt of 60.00 remains.
	debts := []domain.Debt{
		pendingDebt(1, 2, "100.00"),
		pendingDebt(2, 1, "40.00"),
	}

	obligations := Simplify(debts)

	require.Len(t, obligations, 1)
	assert.Equal(t, int64(1), obligations[0].DebtorID)
	assert.Equal(t, int64(2), obligations[0].CreditorID)
	assert.True(t, obligations[0].Amount.Equal(decimal.RequireFromString("60.00")))
}

func TestSimplifyBalancedCycleVanishes(t *testing.T) {
	// 1 -> 2 -> 3 -> 1, all for the same amount: everyone nets to zero.
	debts := []domain.Debt{
		pendingDebt(1, 2, "25.00"),
		pendingDebt(2, 3, "25.00"),
		pendingDebt(3, 1, "25.00"),
	}

	obligations := Simplify(debts)

	assert.Empty(t, obligations)
}

func TestSimplifyPreservesNetPositions(t *testing.T) {
	debts := []domain.Debt{
		pendingDebt(1, 2, "75.00"),
		pendingDebt(3, 2, "75.00"),
		pendingDebt(2, 1, "20.00"),
		pendingDebt(3, 1, "10.50"),
		pendingDebt(1, 4, "33.25"),
	}

	obligations := Simplify(debts)

	before := netPositions(debts)
	after := netPositions(obligationsAsDebts(obligations))
	for userID, want := range before {
		got := after[userID]
		assert.True(t, got.Sub(want).Abs().LessThan(Epsilon),
			"user %d: net before = %s, after = %s", userID, want, got)
	}
}

func TestSimplifyBoundsObligationCount(t *testing.T) {
	// Four users with non-zero nets never need more than three payments.
	debts := []domain.Debt{
		pendingDebt(1, 4, "90.00"),
		pendingDebt(2, 4, "60.00"),
		pendingDebt(3, 4, "30.00"),
		pendingDebt(1, 3, "15.00"),
		pendingDebt(2, 3, "5.00"),
	}

	obligations := Simplify(debts)

	assert.LessOrEqual(t, len(obligations), 3)
}

func TestSimplifyIsFixedPointOnOwnOutput(t *testing.T) {
	debts := []domain.Debt{
		pendingDebt(1, 2, "100.00"),
		pendingDebt(2, 3, "80.00"),
		pendingDebt(3, 1, "10.00"),
		pendingDebt(1, 3, "45.00"),
	}

	first := Simplify(debts)
	second := Simplify(obligationsAsDebts(first))

	assert.True(t, Matches(obligationsAsDebts(first), second),
		"second pass produced different obligations: %v vs %v", first, second)
}

func TestSimplifyBreaksTiesByAscendingUserID(t *testing.T) {
	// Two debtors and two creditors with identical magnitudes: the pairing
	// must come out the same every run.
	debts := []domain.Debt{
		pendingDebt(2, 3, "50.00"),
		pendingDebt(1, 4, "50.00"),
	}

	obligations := Simplify(debts)

	require.Len(t, obligations, 2)
	assert.Equal(t, int64(1), obligations[0].DebtorID)
	assert.Equal(t, int64(3), obligations[0].CreditorID)
	assert.Equal(t, int64(2), obligations[1].DebtorID)
	assert.Equal(t, int64(4), obligations[1].CreditorID)
}

func TestSimplifyDropsSubEpsilonPositions(t *testing.T) {
	debts := []domain.Debt{
		pendingDebt(1, 2, "10.005"),
		pendingDebt(2, 1, "10.00"),
	}

	obligations := Simplify(debts)

	assert.Empty(t, obligations)
}

func TestMatches(t *testing.T) {
	debts := []domain.Debt{
		pendingDebt(1, 2, "60.00"),
		pendingDebt(3, 2, "15.00"),
	}

	assert.True(t, Matches(debts, []Obligation{
		{DebtorID: 3, CreditorID: 2, Amount: decimal.RequireFromString("15.00")},
		{DebtorID: 1, CreditorID: 2, Amount: decimal.RequireFromString("60.00")},
	}))
	assert.False(t, Matches(debts, []Obligation{
		{DebtorID: 1, CreditorID: 2, Amount: decimal.RequireFromString("60.00")},
	}), "length mismatch must not match")
	assert.False(t, Matches(debts, []Obligation{
		{DebtorID: 1, CreditorID: 2, Amount: decimal.RequireFromString("60.00")},
		{DebtorID: 3, CreditorID: 2, Amount: decimal.RequireFromString("15.01")},
	}), "amount mismatch must not match")
}
