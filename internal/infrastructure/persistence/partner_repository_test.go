package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// newMockPartnerRepository creates a GormPartnerRepository with a mocked SQL connection
func newMockPartnerRepository(t *testing.T) (*GormPartnerRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPartnerRepository(gormDB), mock, mockDB
}

func TestGormPartnerRepository_FindByID_Mock(t *testing.T) {
	t.Run("finds existing partner", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		partnerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "currency", "active", "version"}).
			AddRow(partnerID, "PRT001", "Acme Tekstil", "TRY", true, 1)

		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partnerID, 1).
			WillReturnRows(rows)

		partner, err := repo.FindByID(context.Background(), partnerID)

		assert.NoError(t, err)
		require.NotNil(t, partner)
		assert.Equal(t, partnerID, partner.ID)
		assert.Equal(t, "PRT001", partner.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing partner", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		partnerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partnerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		partner, err := repo.FindByID(context.Background(), partnerID)

		assert.Nil(t, partner)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPartnerRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPartnerRepository(db)
	ctx := context.Background()

	partner, err := ledger.NewPartner("PRT001", "Acme Tekstil", valueobject.Currency("TRY"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, partner))

	t.Run("finds by code", func(t *testing.T) {
		loaded, err := repo.FindByCode(ctx, "PRT001")
		require.NoError(t, err)
		assert.Equal(t, partner.ID, loaded.ID)
		assert.Nil(t, loaded.CreditLimitTry)
	})

	t.Run("updates under optimistic locking", func(t *testing.T) {
		require.NoError(t, partner.SetCreditLimit(decimal.NewFromInt(5000)))
		require.NoError(t, repo.Update(ctx, partner))

		loaded, err := repo.FindByID(ctx, partner.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.CreditLimitTry)
		assert.True(t, loaded.CreditLimitTry.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("rejects stale version", func(t *testing.T) {
		stale := *partner
		stale.Version = partner.Version + 5
		err := repo.Update(ctx, &stale)
		assert.True(t, shared.IsDomainError(err, "CONCURRENCY_CONFLICT"))
	})

	t.Run("filters active partners", func(t *testing.T) {
		inactive, err := ledger.NewPartner("PRT002", "Kapali Ltd", valueobject.Currency("TRY"))
		require.NoError(t, err)
		inactive.Active = false
		require.NoError(t, repo.Save(ctx, inactive))

		all, err := repo.FindAll(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := repo.FindAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "PRT001", active[0].Code)
	})
}

func TestGormCashAccountRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCashAccountRepository(db)
	ctx := context.Background()

	account, err := ledger.NewCashAccount("KASA-01", "Main Cash", valueobject.Currency("TRY"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	t.Run("finds by code", func(t *testing.T) {
		loaded, err := repo.FindByCode(ctx, "KASA-01")
		require.NoError(t, err)
		assert.Equal(t, account.ID, loaded.ID)
	})

	t.Run("deletes account", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, account.ID))
		_, err := repo.FindByID(ctx, account.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
		assert.True(t, shared.IsDomainError(repo.Delete(ctx, account.ID), "NOT_FOUND"))
	})
}
