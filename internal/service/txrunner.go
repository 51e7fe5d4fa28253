// internal/service/txrunner.go
package service

import (
	"context"
	"fmt"

	"simple-split/internal/repository"
	"simple-split/pkg/db"
)

// txRunner owns the begin/commit/rollback boundary for a service operation.
// The transaction control functions are injected so tests can substitute them.
type txRunner struct {
	dbBeginner db.DBTxBeginner
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

func newTxRunner(dbBeginner db.DBTxBeginner, beginTx db.BeginTxFunc, commitTx db.CommitTxFunc, rollbackTx db.RollbackTxFunc) txRunner {
	return txRunner{
		dbBeginner: dbBeginner,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// inTx runs fn inside a single database transaction. Either fn's writes all
// commit, or the rollback discards every one of them; no partial state is
// ever observable.
func (r *txRunner) inTx(ctx context.Context, fn func(q repository.DBExecutor) error) error {
	txController, err := r.beginTx(ctx, r.dbBeginner)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer r.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	if err := fn(txExecutor); err != nil {
		return err
	}

	if err := r.commitTx(txController); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
