package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingBucket classifies an open receivable by how many days past due
// it is at the report date.
type AgingBucket string

const (
	BucketNotDue  AgingBucket = "NOT_DUE"
	Bucket0To30   AgingBucket = "0-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// AgingBuckets lists the buckets in report order.
var AgingBuckets = []AgingBucket{BucketNotDue, Bucket0To30, Bucket31To60, Bucket61To90, BucketOver90}

// BucketFor returns the aging bucket for an entry with the given due
// date as of the report date. A nil due date, or a due date on or
// after the report date, is not yet due. Days overdue are counted in
// whole calendar days: exactly 30 days overdue still lands in 0-30.
func BucketFor(dueDate *time.Time, asOf time.Time) AgingBucket {
	if dueDate == nil {
		return BucketNotDue
	}
	due := truncateToDay(*dueDate)
	ref := truncateToDay(asOf)
	if !due.Before(ref) {
		return BucketNotDue
	}
	overdueDays := int(ref.Sub(due).Hours() / 24)
	switch {
	case overdueDays <= 30:
		return Bucket0To30
	case overdueDays <= 60:
		return Bucket31To60
	case overdueDays <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// truncateToDay maps a timestamp to its calendar date at midnight UTC.
// Anchoring in UTC keeps the difference between two dates an exact
// multiple of 24 hours, so day counts are unaffected by DST
// transitions in the input locations.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AgingLine is one open entry placed into its bucket.
type AgingLine struct {
	Entry       *PartnerLedgerEntry
	Outstanding decimal.Decimal
	Bucket      AgingBucket
}

// AgingReport is a partner's open receivables grouped into aging
// buckets as of a report date.
type AgingReport struct {
	AsOf    time.Time
	Lines   []AgingLine
	Buckets map[AgingBucket]decimal.Decimal
	Total   decimal.Decimal
}

// BuildAgingReport buckets the given open entries with their
// outstanding amounts. outstanding maps entry id (string form) to the
// unallocated TRY amount; entries missing from the map use their full
// AmountTry. Entries with nothing outstanding are skipped.
func BuildAgingReport(entries []*PartnerLedgerEntry, outstanding map[string]decimal.Decimal, asOf time.Time) *AgingReport {
	report := &AgingReport{
		AsOf:    asOf,
		Buckets: make(map[AgingBucket]decimal.Decimal, len(AgingBuckets)),
		Total:   decimal.Zero,
	}
	for _, b := range AgingBuckets {
		report.Buckets[b] = decimal.Zero
	}

	for _, e := range entries {
		if !e.IsOpen() || !e.IsDebit() {
			continue
		}
		amount := e.AmountTry
		if out, ok := outstanding[e.ID.String()]; ok {
			amount = out
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		bucket := BucketFor(e.DueDate, asOf)
		report.Lines = append(report.Lines, AgingLine{Entry: e, Outstanding: amount, Bucket: bucket})
		report.Buckets[bucket] = report.Buckets[bucket].Add(amount)
		report.Total = report.Total.Add(amount)
	}
	return report
}
