package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// StockInfoProvider supplies the stock facts the generator needs:
// current on-hand per (item, location) and the item's current unit
// cost for valuing outgoing moves. locationID is nil for stock that is
// not tracked per location.
type StockInfoProvider interface {
	OnHand(ctx context.Context, itemID uuid.UUID, locationID *uuid.UUID) (decimal.Decimal, error)
	CurrentUnitCost(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error)
}

// GenerationResult is the output of the movement generator: the moves
// to persist and any lots that must be created first (new-lot requests
// on lines).
type GenerationResult struct {
	Moves   []*StockMove
	NewLots []*Lot
}

// MovementGenerator turns the lines of a stock-affecting document into
// signed stock moves. It is a pure domain service: it reads stock
// facts through the provider and returns records to persist, it never
// writes anything itself.
type MovementGenerator struct {
	provider StockInfoProvider
}

// NewMovementGenerator creates a movement generator.
func NewMovementGenerator(provider StockInfoProvider) *MovementGenerator {
	return &MovementGenerator{provider: provider}
}

type stockKey struct {
	itemID   uuid.UUID
	location uuid.UUID // uuid.Nil when not location-tracked
}

// Generate produces the stock moves for a validated document. Line
// quantities convert to base units via the line coefficient; the sign
// comes from the document type's direction; transfers produce two
// moves per line. The non-negative guard runs against cumulative
// per-(item, location) deltas across all lines, so two lines draining
// the same stock are caught even if each alone would pass. The guard
// is skipped when the document is flagged to allow negative stock.
func (g *MovementGenerator) Generate(ctx context.Context, doc *document.Document) (*GenerationResult, error) {
	traits := doc.Type.Traits()
	if !traits.AffectsStock {
		return &GenerationResult{}, nil
	}

	result := &GenerationResult{}
	lotByLine := make(map[uuid.UUID]uuid.UUID)

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if err := line.Validate(doc.Type); err != nil {
			return nil, err
		}
		if line.IsService() {
			continue
		}
		if line.NewLotNumber != "" {
			lot, err := NewLot(line.ItemID, line.NewLotNumber)
			if err != nil {
				return nil, err
			}
			result.NewLots = append(result.NewLots, lot)
			lotByLine[line.ID] = lot.ID
		}
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.IsService() {
			continue
		}
		baseQty := line.BaseQuantity()
		unitCost, err := g.resolveUnitCost(ctx, doc, line)
		if err != nil {
			return nil, err
		}

		if traits.IsTransfer {
			out, err := g.buildMove(doc, line, baseQty.Neg(), unitCost, lotByLine)
			if err != nil {
				return nil, err
			}
			out.WithSourceLocation(*line.SourceLocation)

			in, err := g.buildMove(doc, line, baseQty, unitCost, lotByLine)
			if err != nil {
				return nil, err
			}
			in.WithDestLocation(*line.DestLocation)

			result.Moves = append(result.Moves, out, in)
			continue
		}

		signed := baseQty
		if traits.Direction == document.DirectionOut {
			signed = baseQty.Neg()
		}
		move, err := g.buildMove(doc, line, signed, unitCost, lotByLine)
		if err != nil {
			return nil, err
		}
		if signed.IsNegative() {
			if line.SourceLocation != nil {
				move.WithSourceLocation(*line.SourceLocation)
			}
		} else {
			if line.DestLocation != nil {
				move.WithDestLocation(*line.DestLocation)
			}
		}
		result.Moves = append(result.Moves, move)
	}

	if !doc.AllowNegativeStock {
		if err := g.checkOnHand(ctx, result.Moves); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (g *MovementGenerator) buildMove(
	doc *document.Document,
	line *document.Line,
	signedQty decimal.Decimal,
	unitCost decimal.Decimal,
	lotByLine map[uuid.UUID]uuid.UUID,
) (*StockMove, error) {
	move, err := NewStockMove(line.ItemID, signedQty, unitCost, doc.ID, line.ID, doc.Date)
	if err != nil {
		return nil, err
	}
	if line.LotID != nil {
		move.WithLot(*line.LotID)
	} else if lotID, ok := lotByLine[line.ID]; ok {
		move.WithLot(lotID)
	}
	if line.VariantID != nil {
		move.WithVariant(*line.VariantID)
	}
	return move, nil
}

// resolveUnitCost values the move: incoming stock takes the line price
// converted to TRY per base unit; outgoing stock is valued at the
// item's current unit cost.
func (g *MovementGenerator) resolveUnitCost(ctx context.Context, doc *document.Document, line *document.Line) (decimal.Decimal, error) {
	traits := doc.Type.Traits()
	if traits.Direction == document.DirectionIn && !line.UnitPrice.IsZero() {
		perBase := line.UnitPrice.Mul(doc.FxRate).Div(line.UnitCoefficient)
		return shared.RoundCost(perBase), nil
	}
	cost, err := g.provider.CurrentUnitCost(ctx, line.ItemID)
	if err != nil {
		return decimal.Zero, err
	}
	return shared.RoundCost(cost), nil
}

// checkOnHand aggregates move deltas per (item, location) and runs the
// non-negative guard against current on-hand once per key.
func (g *MovementGenerator) checkOnHand(ctx context.Context, moves []*StockMove) error {
	deltas := make(map[stockKey]decimal.Decimal)
	locations := make(map[stockKey]*uuid.UUID)
	for _, move := range moves {
		key := stockKey{itemID: move.ItemID}
		if loc := move.Location(); loc != nil {
			key.location = *loc
		}
		deltas[key] = deltas[key].Add(move.Quantity)
		locations[key] = move.Location()
	}

	for key, delta := range deltas {
		if !delta.IsNegative() {
			continue
		}
		onHand, err := g.provider.OnHand(ctx, key.itemID, locations[key])
		if err != nil {
			return err
		}
		if err := EnsureStockNotNegative(onHand, delta); err != nil {
			return err
		}
	}
	return nil
}
