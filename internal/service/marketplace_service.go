// internal/service/marketplace_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simple-split/internal/domain"
	"simple-split/internal/repository"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

const descriptionPurchase = "receivable purchase"

// MarketplaceItem is a browsable listing enriched with the seller's score.
type MarketplaceItem struct {
	Receivable  domain.Receivable `json:"receivable"`
	SellerName  string            `json:"seller_name"`
	SellerScore decimal.Decimal   `json:"seller_score"`
	Discount    decimal.Decimal   `json:"discount"`
}

// MyReceivables groups a user's marketplace activity by role and state.
type MyReceivables struct {
	Selling []domain.Receivable `json:"selling"`
	Sold    []domain.Receivable `json:"sold"`
	Bought  []domain.Receivable `json:"bought"`
}

// MarketplaceService trades claims on pending debts below face value.
type MarketplaceService interface {
	// ListForSale puts a claim on a pending debt up for sale. Only the debt's
	// current creditor may list, the price must sit strictly between zero and
	// the debt amount, and a debt carries at most one active listing.
	ListForSale(ctx context.Context, debtID, actingUserID int64, sellingPrice decimal.Decimal) (*domain.Receivable, error)
	// Purchase buys a listing: the buyer pays the selling price from their
	// wallet and becomes the debt's creditor.
	Purchase(ctx context.Context, receivableID uuid.UUID, buyerID int64) (*domain.Receivable, error)
	// CancelListing withdraws an active listing. Owner-only.
	CancelListing(ctx context.Context, receivableID uuid.UUID, actingUserID int64) (*domain.Receivable, error)
	// Browse returns the active listings of other users, enriched with seller scores.
	Browse(ctx context.Context, userID int64) ([]MarketplaceItem, error)
	// GetMyReceivables returns the user's listings and purchases.
	GetMyReceivables(ctx context.Context, userID int64) (*MyReceivables, error)
	// GetStats aggregates the active side of the marketplace.
	GetStats(ctx context.Context) (*repository.MarketplaceStats, error)
}

type marketplaceService struct {
	txRunner
	dbExecutor     repository.DBExecutor
	ledger         ledger
	receivableRepo repository.ReceivableRepository
	debtRepo       repository.DebtRepository
	userRepo       repository.UserRepository
}

// NewMarketplaceService creates a new instance of MarketplaceService.
func NewMarketplaceService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	receivableRepo repository.ReceivableRepository,
	debtRepo repository.DebtRepository,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) MarketplaceService {
	return &marketplaceService{
		txRunner:       newTxRunner(dbBeginner, beginTx, commitTx, rollbackTx),
		dbExecutor:     dbExecutor,
		ledger:         ledger{walletRepo: walletRepo, transactionRepo: transactionRepo},
		receivableRepo: receivableRepo,
		debtRepo:       debtRepo,
		userRepo:       userRepo,
	}
}

func (s *marketplaceService) ListForSale(ctx context.Context, debtID, actingUserID int64, sellingPrice decimal.Decimal) (*domain.Receivable, error) {
	var receivable *domain.Receivable
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		debt, err := s.debtRepo.GetDebtByIDForUpdate(ctx, q, debtID)
		if err != nil {
			return fmt.Errorf("list for sale: failed to get debt %d: %w", debtID, err)
		}
		if debt.CreditorID != actingUserID {
			return util.ErrForbidden
		}
		if debt.Status != domain.DebtStatusPending {
			return util.ErrInvalidState
		}
		if sellingPrice.LessThanOrEqual(decimal.Zero) || sellingPrice.GreaterThanOrEqual(debt.Amount) {
			return util.ErrInvalidInput
		}

		_, err = s.receivableRepo.GetActiveByDebtID(ctx, q, debtID)
		switch {
		case err == nil:
			return util.ErrAlreadyListed
		case !errors.Is(err, util.ErrNotFound):
			return fmt.Errorf("list for sale: failed to check listings on debt %d: %w", debtID, err)
		}

		receivable = domain.NewReceivable(debtID, actingUserID, debt.Amount, sellingPrice)
		if err := s.receivableRepo.CreateReceivable(ctx, q, receivable); err != nil {
			return fmt.Errorf("list for sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receivable, nil
}

func (s *marketplaceService) Purchase(ctx context.Context, receivableID uuid.UUID, buyerID int64) (*domain.Receivable, error) {
	var receivable *domain.Receivable
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		receivable, err = s.receivableRepo.GetReceivableByIDForUpdate(ctx, q, receivableID)
		if err != nil {
			return fmt.Errorf("purchase: failed to get receivable %s: %w", receivableID, err)
		}
		if receivable.Status != domain.ReceivableStatusForSale {
			return util.ErrNotAvailable
		}
		if receivable.OwnerID == buyerID {
			return util.ErrSelfPurchase
		}

		debt, err := s.debtRepo.GetDebtByIDForUpdate(ctx, q, receivable.DebtID)
		if err != nil {
			return fmt.Errorf("purchase: failed to get debt %d: %w", receivable.DebtID, err)
		}
		if debt.Status != domain.DebtStatusPending {
			return util.ErrNotAvailable
		}

		if err := s.ledger.transfer(ctx, q, buyerID, receivable.OwnerID, receivable.SellingPrice, descriptionPurchase); err != nil {
			return err
		}
		if err := s.debtRepo.UpdateDebtCreditor(ctx, q, debt.ID, buyerID); err != nil {
			return fmt.Errorf("purchase: %w", err)
		}

		now := time.Now().UTC()
		receivable.Status = domain.ReceivableStatusSold
		receivable.BuyerID = &buyerID
		receivable.SoldAt = &now
		if err := s.receivableRepo.UpdateReceivable(ctx, q, receivable); err != nil {
			return fmt.Errorf("purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receivable, nil
}

func (s *marketplaceService) CancelListing(ctx context.Context, receivableID uuid.UUID, actingUserID int64) (*domain.Receivable, error) {
	var receivable *domain.Receivable
	err := s.inTx(ctx, func(q repository.DBExecutor) error {
		var err error
		receivable, err = s.receivableRepo.GetReceivableByIDForUpdate(ctx, q, receivableID)
		if err != nil {
			return fmt.Errorf("cancel listing: failed to get receivable %s: %w", receivableID, err)
		}
		if receivable.OwnerID != actingUserID {
			return util.ErrForbidden
		}
		if receivable.Status != domain.ReceivableStatusForSale {
			return util.ErrInvalidState
		}

		receivable.Status = domain.ReceivableStatusCancelled
		if err := s.receivableRepo.UpdateReceivable(ctx, q, receivable); err != nil {
			return fmt.Errorf("cancel listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receivable, nil
}

func (s *marketplaceService) Browse(ctx context.Context, userID int64) ([]MarketplaceItem, error) {
	listings, err := s.receivableRepo.GetForSaleExcludingOwner(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("browse marketplace: %w", err)
	}

	items := make([]MarketplaceItem, 0, len(listings))
	sellers := make(map[int64]*domain.User, len(listings))
	for _, listing := range listings {
		seller, ok := sellers[listing.OwnerID]
		if !ok {
			seller, err = s.userRepo.GetUserByID(ctx, s.dbExecutor, listing.OwnerID)
			if err != nil {
				return nil, fmt.Errorf("browse marketplace: failed to get seller %d: %w", listing.OwnerID, err)
			}
			sellers[listing.OwnerID] = seller
		}
		items = append(items, MarketplaceItem{
			Receivable:  listing,
			SellerName:  seller.Name,
			SellerScore: seller.Score,
			Discount:    listing.EstimatedProfit(),
		})
	}
	return items, nil
}

func (s *marketplaceService) GetMyReceivables(ctx context.Context, userID int64) (*MyReceivables, error) {
	selling, err := s.receivableRepo.GetByOwnerAndStatus(ctx, s.dbExecutor, userID, domain.ReceivableStatusForSale)
	if err != nil {
		return nil, fmt.Errorf("get my receivables: %w", err)
	}
	sold, err := s.receivableRepo.GetByOwnerAndStatus(ctx, s.dbExecutor, userID, domain.ReceivableStatusSold)
	if err != nil {
		return nil, fmt.Errorf("get my receivables: %w", err)
	}
	bought, err := s.receivableRepo.GetByBuyerAndStatus(ctx, s.dbExecutor, userID, domain.ReceivableStatusSold)
	if err != nil {
		return nil, fmt.Errorf("get my receivables: %w", err)
	}
	return &MyReceivables{Selling: selling, Sold: sold, Bought: bought}, nil
}

func (s *marketplaceService) GetStats(ctx context.Context) (*repository.MarketplaceStats, error) {
	stats, err := s.receivableRepo.GetStats(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("get marketplace stats: %w", err)
	}
	return stats, nil
}
