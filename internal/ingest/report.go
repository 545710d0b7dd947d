package ingest

import "phoneflip/pkg/models"

// Detail-list caps. Records past a cap still count toward the totals;
// they just stop appending to the bounded lists so a huge batch cannot
// inflate the response.
const (
	csvErrorCap    = 50
	csvImportedCap = 50

	brandErrorCap = 10

	fullErrorCap    = 20
	fullImportedCap = 20
)

// tally accumulates per-record outcomes during a run.
type tally struct {
	total     int
	succeeded int
	failed    int
	errors    []string
	imported  []string
}

func (t *tally) success(identity string, cap int) {
	t.total++
	t.succeeded++
	t.imported = appendBounded(t.imported, cap, identity)
}

func (t *tally) failure(msg string, cap int) {
	t.total++
	t.failed++
	t.errors = appendBounded(t.errors, cap, msg)
}

func appendBounded(list []string, cap int, msg string) []string {
	if len(list) >= cap {
		return list
	}
	return append(list, msg)
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func buildBulkImportReport(t *tally) *models.BulkImportReport {
	return &models.BulkImportReport{
		Success:           t.succeeded > 0,
		TotalRows:         t.total,
		SuccessfulImports: t.succeeded,
		FailedImports:     t.failed,
		Errors:            emptyIfNil(t.errors),
		ImportedSpecs:     emptyIfNil(t.imported),
	}
}

func buildBrandSyncReport(brand string, t *tally) *models.BrandSyncReport {
	return &models.BrandSyncReport{
		Success:           t.succeeded > 0,
		Brand:             brand,
		TotalPhones:       t.total,
		SuccessfulImports: t.succeeded,
		FailedImports:     t.failed,
		Errors:            emptyIfNil(t.errors),
	}
}

func buildFullSyncReport(totalBrands int, t *tally) *models.FullSyncReport {
	return &models.FullSyncReport{
		Success:           t.succeeded > 0,
		Status:            "completed",
		TotalBrands:       totalBrands,
		TotalPhones:       t.total,
		SuccessfulImports: t.succeeded,
		FailedImports:     t.failed,
		ImportedPhones:    emptyIfNil(t.imported),
		Errors:            emptyIfNil(t.errors),
	}
}
