package postgres

import (
	"context"
	"testing"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestCompactQuery(t *testing.T) {
	q := `
		SELECT id
		FROM   invoices
		WHERE  id = $1`
	assert.Equal(t, "SELECT id FROM invoices WHERE id = $1", compact(q))
}

func TestGetTx_Empty(t *testing.T) {
	tx, ok := GetTx(context.Background())
	assert.False(t, ok)
	assert.Nil(t, tx)
}

func TestTxSavepointName(t *testing.T) {
	tx := &Tx{depth: 2}
	assert.Equal(t, "sp_2", tx.savepoint())
}

func TestCommitRollback_NoTransaction(t *testing.T) {
	db := &DB{logger: logger.NewNoopLogger()}

	err := db.CommitTx(context.Background())
	assert.True(t, ierr.IsSystem(err))

	err = db.RollbackTx(context.Background())
	assert.True(t, ierr.IsSystem(err))
}
