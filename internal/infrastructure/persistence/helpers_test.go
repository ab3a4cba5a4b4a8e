package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.DocumentModel{},
		&models.DocumentLineModel{},
		&models.NumberSequenceModel{},
		&models.ItemModel{},
		&models.StockMoveModel{},
		&models.LotModel{},
		&models.PartnerModel{},
		&models.CashAccountModel{},
		&models.PartnerLedgerEntryModel{},
		&models.PaymentAllocationModel{},
		&models.CashLedgerEntryModel{},
		&models.LandedCostApplicationModel{},
		&models.LandedCostReceiptModel{},
		&models.LandedCostAdjustmentModel{},
	)
	require.NoError(t, err)

	return db
}
