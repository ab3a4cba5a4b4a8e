package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
)

// AgingService produces aging reports from a partner's open ledger
// entries. Read-only; it never writes.
type AgingService struct {
	partnerRepo ledger.PartnerRepository
	ledgerRepo  ledger.PartnerLedgerRepository
}

// NewAgingService creates an AgingService.
func NewAgingService(partnerRepo ledger.PartnerRepository, ledgerRepo ledger.PartnerLedgerRepository) *AgingService {
	return &AgingService{partnerRepo: partnerRepo, ledgerRepo: ledgerRepo}
}

// GetPartnerAging buckets the partner's outstanding receivables as of
// the given date. A zero asOf means now.
func (s *AgingService) GetPartnerAging(ctx context.Context, partnerID uuid.UUID, asOf time.Time) (*AgingReportResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	partner, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindOpenByPartner(ctx, partner.ID)
	if err != nil {
		return nil, err
	}

	outstanding := make(map[string]decimal.Decimal, len(entries))
	for _, entry := range entries {
		if !entry.IsDebit() {
			continue
		}
		allocated, err := s.ledgerRepo.AllocatedAmount(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		outstanding[entry.ID.String()] = entry.Outstanding(allocated)
	}

	report := ledger.BuildAgingReport(entries, outstanding, asOf)
	return ToAgingReportResponse(partner.ID, report), nil
}
