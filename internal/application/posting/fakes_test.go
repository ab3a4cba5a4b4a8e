package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/costing"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/document"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/inventory"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/domain/shared"
)

// In-memory repository fakes backing the service tests.

type fakeDocuments struct {
	docs map[uuid.UUID]*document.Document
	seq  map[string]int
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{docs: map[uuid.UUID]*document.Document{}, seq: map[string]int{}}
}

func (f *fakeDocuments) FindByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocuments) Save(_ context.Context, doc *document.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocuments) Update(_ context.Context, doc *document.Document) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return shared.ErrNotFound
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocuments) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocuments) NextNumber(_ context.Context, docType document.Type, year int) (string, error) {
	key := fmt.Sprintf("%s-%d", docType, year)
	f.seq[key]++
	return fmt.Sprintf("%s-%d-%05d", docType, year, f.seq[key]), nil
}

type fakeStockMoves struct {
	moves []*inventory.StockMove
}

func (f *fakeStockMoves) Save(_ context.Context, move *inventory.StockMove) error {
	f.moves = append(f.moves, move)
	return nil
}

func (f *fakeStockMoves) FindByDocument(_ context.Context, documentID uuid.UUID) ([]*inventory.StockMove, error) {
	var out []*inventory.StockMove
	for _, m := range f.moves {
		if m.DocumentID == documentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStockMoves) OnHand(_ context.Context, itemID uuid.UUID, locationID *uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range f.moves {
		if m.ItemID != itemID {
			continue
		}
		if locationID != nil {
			loc := m.Location()
			if loc == nil || *loc != *locationID {
				continue
			}
		}
		total = total.Add(m.Quantity)
	}
	return total, nil
}

func (f *fakeStockMoves) UpdateUnitCost(_ context.Context, moveID uuid.UUID, unitCost decimal.Decimal) error {
	for _, m := range f.moves {
		if m.ID == moveID {
			m.UnitCost = unitCost
			return nil
		}
	}
	return shared.ErrNotFound
}

type fakeLots struct {
	lots map[uuid.UUID]*inventory.Lot
}

func newFakeLots() *fakeLots { return &fakeLots{lots: map[uuid.UUID]*inventory.Lot{}} }

func (f *fakeLots) Save(_ context.Context, lot *inventory.Lot) error {
	f.lots[lot.ID] = lot
	return nil
}

func (f *fakeLots) FindByID(_ context.Context, id uuid.UUID) (*inventory.Lot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (f *fakeLots) FindByNumber(_ context.Context, itemID uuid.UUID, number string) (*inventory.Lot, error) {
	for _, lot := range f.lots {
		if lot.ItemID == itemID && lot.Number == number {
			return lot, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeItems struct {
	items map[uuid.UUID]*inventory.Item
}

func newFakeItems() *fakeItems { return &fakeItems{items: map[uuid.UUID]*inventory.Item{}} }

func (f *fakeItems) FindByID(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (f *fakeItems) Save(_ context.Context, item *inventory.Item) error {
	f.items[item.ID] = item
	return nil
}

type fakePartners struct {
	partners map[uuid.UUID]*ledger.Partner
}

func newFakePartners() *fakePartners { return &fakePartners{partners: map[uuid.UUID]*ledger.Partner{}} }

func (f *fakePartners) FindByID(_ context.Context, id uuid.UUID) (*ledger.Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakePartners) FindByCode(_ context.Context, code string) (*ledger.Partner, error) {
	for _, p := range f.partners {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakePartners) FindAll(_ context.Context, activeOnly bool) ([]*ledger.Partner, error) {
	var out []*ledger.Partner
	for _, p := range f.partners {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartners) Save(_ context.Context, p *ledger.Partner) error {
	f.partners[p.ID] = p
	return nil
}

func (f *fakePartners) Update(_ context.Context, p *ledger.Partner) error {
	f.partners[p.ID] = p
	return nil
}

type fakeCashAccounts struct {
	accounts map[uuid.UUID]*ledger.CashAccount
}

func newFakeCashAccounts() *fakeCashAccounts {
	return &fakeCashAccounts{accounts: map[uuid.UUID]*ledger.CashAccount{}}
}

func (f *fakeCashAccounts) FindByID(_ context.Context, id uuid.UUID) (*ledger.CashAccount, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (f *fakeCashAccounts) FindByCode(_ context.Context, code string) (*ledger.CashAccount, error) {
	for _, a := range f.accounts {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCashAccounts) FindAll(_ context.Context, activeOnly bool) ([]*ledger.CashAccount, error) {
	var out []*ledger.CashAccount
	for _, a := range f.accounts {
		if !activeOnly || a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCashAccounts) Save(_ context.Context, a *ledger.CashAccount) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeCashAccounts) Update(_ context.Context, a *ledger.CashAccount) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeCashAccounts) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.accounts, id)
	return nil
}

type fakePartnerLedger struct {
	entries     map[uuid.UUID]*ledger.PartnerLedgerEntry
	allocations []*ledger.PaymentAllocation
}

func newFakePartnerLedger() *fakePartnerLedger {
	return &fakePartnerLedger{entries: map[uuid.UUID]*ledger.PartnerLedgerEntry{}}
}

func (f *fakePartnerLedger) FindByID(_ context.Context, id uuid.UUID) (*ledger.PartnerLedgerEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakePartnerLedger) FindByPartner(_ context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.PartnerID == partnerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedger) FindOpenByPartner(_ context.Context, partnerID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.PartnerID == partnerID && e.IsOpen() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedger) FindByDocument(_ context.Context, documentID uuid.UUID) ([]*ledger.PartnerLedgerEntry, error) {
	var out []*ledger.PartnerLedgerEntry
	for _, e := range f.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePartnerLedger) Save(_ context.Context, e *ledger.PartnerLedgerEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakePartnerLedger) Update(_ context.Context, e *ledger.PartnerLedgerEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakePartnerLedger) OpenDebitTotal(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.entries {
		if e.PartnerID != partnerID || !e.IsOpen() || !e.IsDebit() {
			continue
		}
		allocated, err := f.AllocatedAmount(ctx, e.ID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(e.Outstanding(allocated))
	}
	return total, nil
}

func (f *fakePartnerLedger) SaveAllocation(_ context.Context, a *ledger.PaymentAllocation) error {
	f.allocations = append(f.allocations, a)
	return nil
}

func (f *fakePartnerLedger) FindAllocationsByEntry(_ context.Context, entryID uuid.UUID) ([]*ledger.PaymentAllocation, error) {
	var out []*ledger.PaymentAllocation
	for _, a := range f.allocations {
		if a.InvoiceEntryID == entryID || a.PaymentEntryID == entryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakePartnerLedger) AllocatedAmount(_ context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range f.allocations {
		if a.InvoiceEntryID == entryID || a.PaymentEntryID == entryID {
			total = total.Add(a.Amount)
		}
	}
	return total, nil
}

type fakeCashLedger struct {
	entries []*ledger.CashLedgerEntry
}

func (f *fakeCashLedger) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	var out []*ledger.CashLedgerEntry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedger) FindByAccountUntil(ctx context.Context, accountID uuid.UUID, asOf time.Time) ([]*ledger.CashLedgerEntry, error) {
	all, _ := f.FindByAccount(ctx, accountID)
	var out []*ledger.CashLedgerEntry
	for _, e := range all {
		if !e.EntryDate.After(asOf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedger) FindByDocument(_ context.Context, documentID uuid.UUID) ([]*ledger.CashLedgerEntry, error) {
	var out []*ledger.CashLedgerEntry
	for _, e := range f.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCashLedger) Save(_ context.Context, e *ledger.CashLedgerEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeCashLedger) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

type fakeLandedCosts struct {
	applications map[uuid.UUID]*costing.Application
}

func newFakeLandedCosts() *fakeLandedCosts {
	return &fakeLandedCosts{applications: map[uuid.UUID]*costing.Application{}}
}

func (f *fakeLandedCosts) FindByID(_ context.Context, id uuid.UUID) (*costing.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (f *fakeLandedCosts) FindByInvoice(_ context.Context, invoiceDocumentID uuid.UUID) ([]*costing.Application, error) {
	var out []*costing.Application
	for _, a := range f.applications {
		if a.InvoiceDocumentID == invoiceDocumentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeLandedCosts) Save(_ context.Context, a *costing.Application) error {
	f.applications[a.ID] = a
	return nil
}

func (f *fakeLandedCosts) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.applications, id)
	return nil
}

// fixture bundles the fakes behind a no-op scope.
type fixture struct {
	documents     *fakeDocuments
	stockMoves    *fakeStockMoves
	lots          *fakeLots
	items         *fakeItems
	partners      *fakePartners
	cashAccounts  *fakeCashAccounts
	partnerLedger *fakePartnerLedger
	cashLedger    *fakeCashLedger
	landedCosts   *fakeLandedCosts
	scope         *NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		documents:     newFakeDocuments(),
		stockMoves:    &fakeStockMoves{},
		lots:          newFakeLots(),
		items:         newFakeItems(),
		partners:      newFakePartners(),
		cashAccounts:  newFakeCashAccounts(),
		partnerLedger: newFakePartnerLedger(),
		cashLedger:    &fakeCashLedger{},
		landedCosts:   newFakeLandedCosts(),
	}
	f.scope = NewNoOpTransactionScope(
		f.documents, f.stockMoves, f.lots, f.items,
		f.partners, f.cashAccounts, f.partnerLedger, f.cashLedger,
		f.landedCosts,
	)
	return f
}
