// internal/domain/receivable.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus defines the lifecycle state of a marketplace listing.
type ReceivableStatus string

const (
	ReceivableStatusForSale   ReceivableStatus = "for_sale"
	ReceivableStatusSold      ReceivableStatus = "sold"
	ReceivableStatusCancelled ReceivableStatus = "cancelled"
)

// Receivable is a for-sale claim on a pending debt's future payment, listed
// below face value. At most one active listing exists per debt.
type Receivable struct {
	ID            uuid.UUID        `db:"id" json:"id"`                         // Primary key, UUID in DB
	DebtID        int64            `db:"debt_id" json:"debt_id"`               // Debt the claim is on
	OwnerID       int64            `db:"owner_id" json:"owner_id"`             // Seller, the debt's creditor at listing time
	BuyerID       *int64           `db:"buyer_id" json:"buyer_id"`             // Set when sold
	NominalAmount decimal.Decimal  `db:"nominal_amount" json:"nominal_amount"` // Snapshot of the debt amount
	SellingPrice  decimal.Decimal  `db:"selling_price" json:"selling_price"`   // Asking price, < nominal amount
	Status        ReceivableStatus `db:"status" json:"status"`                 // for_sale, sold or cancelled
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	SoldAt        *time.Time       `db:"sold_at" json:"sold_at"`
}

// NewReceivable creates a new for-sale Receivable instance.
func NewReceivable(debtID, ownerID int64, nominalAmount, sellingPrice decimal.Decimal) *Receivable {
	return &Receivable{
		ID:            uuid.New(),
		DebtID:        debtID,
		OwnerID:       ownerID,
		NominalAmount: nominalAmount,
		SellingPrice:  sellingPrice,
		Status:        ReceivableStatusForSale,
		CreatedAt:     time.Now().UTC(),
	}
}

// EstimatedProfit is the discount the buyer earns when the debtor pays in full.
func (r *Receivable) EstimatedProfit() decimal.Decimal {
	return r.NominalAmount.Sub(r.SellingPrice)
}
