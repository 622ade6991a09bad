package validation

import (
	"context"
	"runtime"
	"sync"

	"quizbank/internal/bank"
	"quizbank/internal/domain"

	"golang.org/x/sync/errgroup"
)

// RecordResult is the validation outcome for one record.
type RecordResult struct {
	ID     string
	Source string
	Errors domain.ValidationErrors
}

// BatchResult aggregates per-record outcomes across the whole bank.
type BatchResult struct {
	Results []RecordResult
	invalid int
}

// OK reports whether every record validated cleanly.
func (b *BatchResult) OK() bool {
	return b.invalid == 0
}

// InvalidCount returns the number of records with at least one violation.
func (b *BatchResult) InvalidCount() int {
	return b.invalid
}

// Invalid returns only the failing records.
func (b *BatchResult) Invalid() []RecordResult {
	out := make([]RecordResult, 0, b.invalid)
	for _, r := range b.Results {
		if len(r.Errors) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// ValidateBatch validates every record. Records are independent, so the
// work fans out across workers; results keep the input order. The batch
// never stops at the first bad record: the caller gets the full picture
// before deciding the run failed.
func ValidateBatch(ctx context.Context, records []bank.Record) *BatchResult {
	results := make([]RecordResult, len(records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	var mu sync.Mutex
	invalid := 0

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			// Decode-time violations sit in the same reporting tier as
			// the validator's own findings.
			errs := ValidateItem(rec.Item)
			if len(rec.LoadErrors) > 0 {
				merged := make(domain.ValidationErrors, 0, len(rec.LoadErrors)+len(errs))
				merged = append(merged, rec.LoadErrors...)
				errs = append(merged, errs...)
			}
			results[i] = RecordResult{
				ID:     rec.Item.ID,
				Source: rec.Source,
				Errors: errs,
			}
			if len(errs) > 0 {
				mu.Lock()
				invalid++
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; violations are data, not failures.
	_ = g.Wait()

	return &BatchResult{Results: results, invalid: invalid}
}
