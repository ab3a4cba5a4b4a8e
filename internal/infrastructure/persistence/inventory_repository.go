package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence/models"
)

// GormStockMoveRepository implements inventory.StockMoveRepository using GORM
type GormStockMoveRepository struct {
	db *gorm.DB
}

// NewGormStockMoveRepository creates a new GormStockMoveRepository
func NewGormStockMoveRepository(db *gorm.DB) *GormStockMoveRepository {
	return &GormStockMoveRepository{db: db}
}

// Save persists a stock move
func (r *GormStockMoveRepository) Save(ctx context.Context, move *inventory.StockMove) error {
	model := models.StockMoveModelFromDomain(move)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByDocument returns all moves produced by a document
func (r *GormStockMoveRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]*inventory.StockMove, error) {
	var moveModels []models.StockMoveModel
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at").
		Find(&moveModels).Error; err != nil {
		return nil, err
	}
	moves := make([]*inventory.StockMove, len(moveModels))
	for i := range moveModels {
		moves[i] = moveModels[i].ToDomain()
	}
	return moves, nil
}

// OnHand sums signed quantities for the item. With a location, only
// moves touching that location count: inbound moves arriving there and
// outbound moves leaving it.
func (r *GormStockMoveRepository) OnHand(ctx context.Context, itemID uuid.UUID, locationID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.StockMoveModel{}).
		Where("item_id = ?", itemID)
	if locationID != nil {
		query = query.Where(
			"(quantity > 0 AND dest_location = ?) OR (quantity < 0 AND source_location = ?)",
			*locationID, *locationID,
		)
	}

	var total decimal.NullDecimal
	if err := query.
		Select("SUM(quantity)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// UpdateUnitCost restates the cost on a single move
func (r *GormStockMoveRepository) UpdateUnitCost(ctx context.Context, moveID uuid.UUID, unitCost decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockMoveModel{}).
		Where("id = ?", moveID).
		Update("unit_cost", unitCost)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormLotRepository implements inventory.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// Save persists a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	model := models.LotModelFromDomain(lot)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a lot by ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a lot by item and lot number
func (r *GormLotRepository) FindByNumber(ctx context.Context, itemID uuid.UUID, number string) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND number = ?", itemID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	model := models.ItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}
