// internal/repository/receivable_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
)

// MarketplaceStats aggregates the active side of the marketplace.
type MarketplaceStats struct {
	TotalForSale int64           `db:"total_for_sale"` // Number of for-sale listings
	TotalVolume  decimal.Decimal `db:"total_volume"`   // Sum of selling prices
	MaxDiscount  decimal.Decimal `db:"max_discount"`   // Largest nominal-minus-price spread
}

// ReceivableRepository defines the interface for receivable data operations.
type ReceivableRepository interface {
	// CreateReceivable adds a new listing using the provided DBExecutor.
	CreateReceivable(ctx context.Context, q DBExecutor, receivable *domain.Receivable) error
	// GetReceivableByID retrieves a listing by its ID.
	GetReceivableByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Receivable, error)
	// GetReceivableByIDForUpdate retrieves a listing and locks its row for the
	// duration of the surrounding transaction.
	GetReceivableByIDForUpdate(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Receivable, error)
	// GetActiveByDebtID retrieves the for-sale listing on a debt, if any.
	GetActiveByDebtID(ctx context.Context, q DBExecutor, debtID int64) (*domain.Receivable, error)
	// GetForSaleExcludingOwner retrieves all active listings not owned by the user.
	GetForSaleExcludingOwner(ctx context.Context, q DBExecutor, userID int64) ([]domain.Receivable, error)
	// GetByOwnerAndStatus retrieves a user's listings in a given status.
	GetByOwnerAndStatus(ctx context.Context, q DBExecutor, ownerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error)
	// GetByBuyerAndStatus retrieves a user's purchased listings in a given status.
	GetByBuyerAndStatus(ctx context.Context, q DBExecutor, buyerID int64, status domain.ReceivableStatus) ([]domain.Receivable, error)
	// UpdateReceivable persists status, buyer and sold_at changes.
	UpdateReceivable(ctx context.Context, q DBExecutor, receivable *domain.Receivable) error
	// GetStats aggregates counts and volumes over active listings.
	GetStats(ctx context.Context, q DBExecutor) (*MarketplaceStats, error)
}
