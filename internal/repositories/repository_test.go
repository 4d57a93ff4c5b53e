package repositories

import (
	"database/sql"
	"os"
	"telemora/internal/config"
	"telemora/internal/database"
	"telemora/internal/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testContract = "0:3333333333333333333333333333333333333333333333333333333333333333"

// initTestDB connects to the database named by DB_* and applies migrations.
// Tests are skipped when DB_HOST is not set.
func initTestDB(t *testing.T) *database.Postgres {
	t.Helper()

	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST is not set")
	}

	db, err := database.NewPostgres(config.LoadPostgresConfig())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() {
		_, _ = db.Db.Exec("delete from operation where contract=$1", testContract)
		_, _ = db.Db.Exec("delete from contract_snapshot where contract=$1", testContract)
		_ = db.Close()
	})

	return db
}

func TestOperationRepositorySaveAndFind(t *testing.T) {
	db := initTestDB(t)
	repo := NewOperationRepository(db.Db)

	amount, _ := decimal.NewFromString("123456789012345678901234567")
	op := models.Operation{
		Kind:       models.OP_WITHDRAW,
		Contract:   testContract,
		Target:     sql.NullString{String: "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c", Valid: true},
		AmountNano: amount,
		ValueNano:  decimal.NewFromInt(50_000_000),
		QueryId:    decimal.NewFromInt(7),
		Status:     models.STATUS_SENT,
	}

	require.NoError(t, repo.Save(&op))
	require.True(t, op.Id.Valid)

	got, err := repo.FindById(op.Id.Int64)
	require.NoError(t, err)
	require.Equal(t, op.Kind, got.Kind)
	require.True(t, amount.Equal(got.AmountNano))
	require.Equal(t, op.Target, got.Target)

	list, err := repo.FindByContractLimit(testContract, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, repo.CountByContract(testContract))
}

func TestSnapshotRepositoryFindLatest(t *testing.T) {
	db := initTestDB(t)
	repo := NewSnapshotRepository(db.Db)

	for _, bps := range []int64{100, 250} {
		require.NoError(t, repo.Save(&models.ContractSnapshot{
			Contract:      testContract,
			BalanceNano:   decimal.NewFromInt(1_000_000_000),
			CommissionBps: bps,
		}))
	}

	latest, err := repo.FindLatest(testContract)
	require.NoError(t, err)
	require.EqualValues(t, 250, latest.CommissionBps)
	require.False(t, latest.AdminAddress.Valid)

	list, err := repo.FindByContractLimit(testContract, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
