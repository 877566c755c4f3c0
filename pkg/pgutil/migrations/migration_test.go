package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/config"
	"github.com/chainsafe/insured-bridge/pkg/pgutil"
)

type ledgerRowDao struct {
	bun.BaseModel `bun:"table:ledger_rows"`
	ID            int64  `bun:",pk,autoincrement"`
	Account       string `bun:",notnull,type:varchar(100)"`
	Amount        string `bun:",notnull,type:numeric(78,0)"`
}

func setup(t *testing.T) (context.Context, *bun.DB) {
	t.Helper()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()
	require.NoError(t, CreateSchema(ctx, db, &ledgerRowDao{}))
	return ctx, db
}

func TestConnectDB_InvalidHost(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     5432,
		User:     "test",
		Password: "test",
		Database: "test",
		SSLMode:  "disable",
	}

	db, err := pgutil.ConnectDB(context.Background(), cfg, zap.NewNop())
	if err == nil {
		_ = db.Close()
		t.Error("ConnectDB() should fail with invalid host")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	ctx, db := setup(t)

	pgutil.AssertTableExists(t, db, "ledger_rows")
	require.NoError(t, CreateSchema(ctx, db, &ledgerRowDao{}))
}

func TestDropTables(t *testing.T) {
	ctx, db := setup(t)

	require.NoError(t, DropTables(ctx, db, &ledgerRowDao{}))
	pgutil.AssertTableNotExists(t, db, "ledger_rows")

	// dropping a missing table is a no-op
	require.NoError(t, DropTables(ctx, db, &ledgerRowDao{}))
}

func TestInsertAndTruncate(t *testing.T) {
	ctx, db := setup(t)

	err := InsertEntry(ctx, db,
		&ledgerRowDao{Account: "pool_assets", Amount: "1000000000000000000"},
		&ledgerRowDao{Account: "insurance_fund", Amount: "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	)
	require.NoError(t, err)
	pgutil.AssertRowCount(t, db, "ledger_rows", 2)

	var row ledgerRowDao
	err = db.NewSelect().Model(&row).Where("account = ?", "insurance_fund").Scan(ctx)
	require.NoError(t, err)
	require.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", row.Amount)

	require.NoError(t, TruncateTables(ctx, db, &ledgerRowDao{}))
	pgutil.AssertRowCount(t, db, "ledger_rows", 0)
	pgutil.AssertTableExists(t, db, "ledger_rows")
}

func TestCreateModelIndexes(t *testing.T) {
	ctx, db := setup(t)

	require.NoError(t, CreateModelIndexes(ctx, db, &ledgerRowDao{}, "account", "amount"))
	pgutil.AssertIndexExists(t, db, "idx_ledger_rows_account")
	pgutil.AssertIndexExists(t, db, "idx_ledger_rows_amount")

	require.NoError(t, CreateModelIndexes(ctx, db, &ledgerRowDao{}, "account"))
}

func TestCreateModelIndexes_NilModel(t *testing.T) {
	_, db := setup(t)

	require.Error(t, CreateModelIndexes(context.Background(), db, nil, "account"))
}
