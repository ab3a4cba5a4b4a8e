package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared/valueobject"
)

// PartnerService manages partner master records.
type PartnerService struct {
	partnerRepo ledger.PartnerRepository
}

// NewPartnerService creates a PartnerService.
func NewPartnerService(partnerRepo ledger.PartnerRepository) *PartnerService {
	return &PartnerService{partnerRepo: partnerRepo}
}

// CreatePartner creates a partner master record.
func (s *PartnerService) CreatePartner(ctx context.Context, req *CreatePartnerRequest) (*PartnerResponse, error) {
	if existing, err := s.partnerRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	partner, err := ledger.NewPartner(req.Code, req.Name, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := partner.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if err := s.partnerRepo.Save(ctx, partner); err != nil {
		return nil, err
	}
	return ToPartnerResponse(partner), nil
}

// GetPartner loads a partner master record.
func (s *PartnerService) GetPartner(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPartnerResponse(partner), nil
}

// ListPartners returns partner masters.
func (s *PartnerService) ListPartners(ctx context.Context, activeOnly bool) ([]*PartnerResponse, error) {
	partners, err := s.partnerRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]*PartnerResponse, 0, len(partners))
	for _, p := range partners {
		resp = append(resp, ToPartnerResponse(p))
	}
	return resp, nil
}

// SetCreditLimit sets or clears a partner's credit limit. A nil limit
// removes the cap entirely.
func (s *PartnerService) SetCreditLimit(ctx context.Context, id uuid.UUID, limit *decimal.Decimal) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit == nil {
		partner.ClearCreditLimit()
	} else if err := partner.SetCreditLimit(*limit); err != nil {
		return nil, err
	}
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return ToPartnerResponse(partner), nil
}
