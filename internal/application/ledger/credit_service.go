package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
)

// CreditService answers whether a partner can take on more debt. The
// posting pipeline runs the same rule inside its transaction; this
// service backs the standalone pre-check endpoint.
type CreditService struct {
	partnerRepo ledger.PartnerRepository
	ledgerRepo  ledger.PartnerLedgerRepository
}

// NewCreditService creates a CreditService.
func NewCreditService(partnerRepo ledger.PartnerRepository, ledgerRepo ledger.PartnerLedgerRepository) *CreditService {
	return &CreditService{partnerRepo: partnerRepo, ledgerRepo: ledgerRepo}
}

// CheckCredit reports whether the incoming amount fits under the
// partner's credit limit given current open exposure.
func (s *CreditService) CheckCredit(ctx context.Context, partnerID uuid.UUID, incoming decimal.Decimal) (*CreditCheckResponse, error) {
	partner, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	exposure, err := s.ledgerRepo.OpenDebitTotal(ctx, partner.ID)
	if err != nil {
		return nil, err
	}

	allowed := ledger.EnsureCreditAvailable(partner, exposure, incoming) == nil
	return &CreditCheckResponse{
		PartnerID:   partner.ID,
		Exposure:    exposure,
		Incoming:    incoming,
		CreditLimit: partner.CreditLimitTry,
		Allowed:     allowed,
	}, nil
}

// EnsureCreditAvailable fails with CREDIT_LIMIT_EXCEEDED when the
// incoming amount would push the partner over its limit.
func (s *CreditService) EnsureCreditAvailable(ctx context.Context, partnerID uuid.UUID, incoming decimal.Decimal) error {
	partner, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return err
	}
	exposure, err := s.ledgerRepo.OpenDebitTotal(ctx, partner.ID)
	if err != nil {
		return err
	}
	return ledger.EnsureCreditAvailable(partner, exposure, incoming)
}
