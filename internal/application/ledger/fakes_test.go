package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*document.Document
	seq  int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*document.Document{}}
}

func (f *fakeDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocumentRepo) Save(_ context.Context, doc *document.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, doc *document.Document) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return shared.ErrNotFound
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) NextNumber(_ context.Context, docType document.Type, year int) (string, error) {
	f.seq++
	return fmt.Sprintf("%s-%d-%05d", docType, year, f.seq), nil
}

type fakePartnerRepo struct {
	partners map[uuid.UUID]*ledger.Partner
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: map[uuid.UUID]*ledger.Partner{}}
}

func (f *fakePartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakePartnerRepo) FindByCode(_ context.Context, code string) (*ledger.Partner, error) {
	for _, p := range f.partners {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakePartnerRepo) FindAll(_ context.Context, activeOnly bool) ([]*ledger.Partner, error) {
	var out []*ledger.Partner
	for _, p := range f.partners {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartnerRepo) Save(_ context.Context, p *ledger.Partner) error {
	f.partners[p.ID] = p
	return nil
}

func (f *fakePartnerRepo) Update(_ context.Context, p *ledger.Partner) error {
	f.partners[p.ID] = p
	return nil
}

type fakeCashAccountRepo struct {
	accounts map[uuid.UUID]*ledger.CashAccount
}

func newFakeCashAccountRepo() *fakeCashAccountRepo {
	return &fakeCashAccountRepo{accounts: map[uuid.UUID]*ledger.CashAccount{}}
}

func (f *fakeCashAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.CashAccount, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (f *fakeCashAccountRepo) FindByCode(_ context.Context, code string) (*ledger.CashAccount, error) {
	for _, a := range f.accounts {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCashAccountRepo) FindAll(_ context.Context, activeOnly bool) ([]*ledger.CashAccount, error) {
	var out []*ledger.CashAccount
	for _, a := range f.accounts {
		if !activeOnly || a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCashAccountRepo) Save(_ context.Context, a *ledger.CashAccount) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeCashAccountRepo) Update(_ context.Context, a *ledger.CashAccount) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeCashAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.accounts, id)
	return nil
}

type fakePartnerLedgerRepo struct {
	entries     map[uuid.UUID]*ledger.PartnerLedgerEntry
	allocations []*ledger.PaymentAllocation
}

func newFakePartnerLedgerRepo() *fakePartnerLedgerRepo {
	return &fakePartnerLedgerRepo{entries: map[uuid.UUID]*ledger.PartnerLedgerEntry{}}
}

func (f *fakePartnerLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.PartnerLedgerEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakePartnerLedgerRepo) FindByPartner(_ context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.PartnerID == partnerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedgerRepo) FindOpenByPartner(_ context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.PartnerID == partnerID && e.IsOpen() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedgerRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedgerRepo) Save(_ context.Context, e *ledger.PartnerLedgerEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakePartnerLedgerRepo) Update(_ context.Context, e *ledger.PartnerLedgerEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakePartnerLedgerRepo) OpenDebitTotal(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.entries {
		if e.PartnerID != partnerID || !e.IsOpen() || !e.IsDebit() {
			continue
		}
		allocated, _ := f.AllocatedAmount(ctx, e.ID)
		total = total.Add(e.Outstanding(allocated))
	}
	return total, nil
}

func (f *fakePartnerLedgerRepo) SaveAllocation(_ context.Context, a *ledger.PaymentAllocation) error {
	f.allocations = append(f.allocations, a)
	return nil
}

func (f *fakePartnerLedgerRepo) FindAllocationsByEntry(_ context.Context, entryID uuid.UUID) ([]*ledger.PaymentAllocation, error) {
	var out []*ledger.PaymentAllocation
	for _, a := range f.allocations {
		if a.InvoiceEntryID == entryID || a.PaymentEntryID == entryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakePartnerLedgerRepo) AllocatedAmount(_ context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range f.allocations {
		if a.InvoiceEntryID == entryID || a.PaymentEntryID == entryID {
			total = total.Add(a.Amount)
		}
	}
	return total, nil
}

type fakeCashLedgerRepo struct {
	entries []*ledger.CashLedgerEntry
}

func (f *fakeCashLedgerRepo) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	var out []*ledger.CashLedgerEntry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedgerRepo) FindByAccountUntil(ctx context.Context, accountID uuid.UUID, asOf time.Time) ([]*ledger.CashLedgerEntry, error) {
	all, _ := f.FindByAccount(ctx, accountID)
	var out []*ledger.CashLedgerEntry
	for _, e := range all {
		if !e.EntryDate.After(asOf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedgerRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	var out []*ledger.CashLedgerEntry
	for _, e := range f.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedgerRepo) Save(_ context.Context, e *ledger.CashLedgerEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeCashLedgerRepo) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

// fixture bundles the ledger fakes behind a no-op scope. Repositories
// outside the ledger's reach stay nil; these tests never touch them.
type fixture struct {
	documents     *fakeDocumentRepo
	partners      *fakePartnerRepo
	cashAccounts  *fakeCashAccountRepo
	partnerLedger *fakePartnerLedgerRepo
	cashLedger    *fakeCashLedgerRepo
	scope         *posting.NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		documents:     newFakeDocumentRepo(),
		partners:      newFakePartnerRepo(),
		cashAccounts:  newFakeCashAccountRepo(),
		partnerLedger: newFakePartnerLedgerRepo(),
		cashLedger:    &fakeCashLedgerRepo{},
	}
	f.scope = posting.NewNoOpTransactionScope(
		f.documents, nil, nil, nil,
		f.partners, f.cashAccounts, f.partnerLedger, f.cashLedger,
		nil,
	)
	return f
}
