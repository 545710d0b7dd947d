package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"phoneflip/internal/catalog"
	"phoneflip/internal/progress"
	"phoneflip/internal/specsource"
	"phoneflip/pkg/logger"
	"phoneflip/pkg/models"
)

// Importer drives records through the pipeline one at a time: adapter →
// resolver → synthesizer → normalizer → dedupe/upsert. Records are
// strictly sequential so duplicate detection observes earlier inserts
// within the same run; a failure in any stage marks that record failed
// and the run moves on.
type Importer struct {
	Repo   catalog.Repository
	Specs  *specsource.Client
	Log    *logger.Logger
	Events *progress.Hub

	// Inter-call throttling on the sync path. Zeroed in tests.
	PhoneDelay time.Duration
	BrandDelay time.Duration
}

func NewImporter(repo catalog.Repository, specs *specsource.Client, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Importer{
		Repo:       repo,
		Specs:      specs,
		Log:        log,
		PhoneDelay: 300 * time.Millisecond,
		BrandDelay: 1500 * time.Millisecond,
	}
}

// ImportCSV runs the CSV path over an already-extension-checked file.
// The returned error covers only an unreadable header, which fails the
// request before any record is touched; everything after that is
// per-row and lands in the report.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader) (*models.BulkImportReport, error) {
	rr, err := NewRowReader(r)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	dedupe := &Deduplicator{Repo: imp.Repo, Policy: RejectDuplicate}
	t := &tally{}

	imp.Log.Info("csv import started", "run_id", runID)

	for {
		row, line, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.failure(fmt.Sprintf("Row %d: %v", line, err), csvErrorCap)
			imp.publishRecord(runID, "csv", "", "", line, err, t)
			continue
		}

		spec, err := FromRow(row)
		if err != nil {
			t.failure(fmt.Sprintf("Row %d: %v", line, err), csvErrorCap)
			imp.publishRecord(runID, "csv", "", "", line, err, t)
			continue
		}

		outcome, err := dedupe.Apply(ctx, spec)
		switch {
		case err != nil:
			t.failure(fmt.Sprintf("Row %d: %v", line, err), csvErrorCap)
		case outcome == RejectedDuplicate:
			err = fmt.Errorf("%s already exists", spec.Identity())
			t.failure(fmt.Sprintf("Row %d: %v", line, err), csvErrorCap)
		default:
			t.success(spec.Identity(), csvImportedCap)
		}
		imp.publishRecord(runID, "csv", spec.Brand, spec.Model, line, err, t)
	}

	imp.Log.Info("csv import finished",
		"run_id", runID, "total", t.total, "succeeded", t.succeeded, "failed", t.failed)
	imp.publishDone(runID, "csv", t)
	return buildBulkImportReport(t), nil
}

// SyncBrand imports every phone of one brand from the specs API,
// updating records that already exist.
func (imp *Importer) SyncBrand(ctx context.Context, brand specsource.Brand) *models.BrandSyncReport {
	runID := uuid.NewString()
	t := &tally{}

	imp.Log.Info("brand sync started", "run_id", runID, "brand", brand.BrandName)

	phones, err := imp.Specs.ListPhones(ctx, brand.BrandSlug)
	if err != nil {
		t.errors = appendBounded(t.errors, brandErrorCap,
			fmt.Sprintf("%s: %v", brand.BrandName, err))
		imp.Log.Warn("brand phone listing failed", "run_id", runID, "brand", brand.BrandName, "error", err)
		imp.publishDone(runID, models.SourcePhoneSpecsAPI, t)
		return buildBrandSyncReport(brand.BrandName, t)
	}

	imp.syncPhones(ctx, runID, brand, phones, t, brandErrorCap, 0)

	imp.Log.Info("brand sync finished",
		"run_id", runID, "brand", brand.BrandName,
		"total", t.total, "succeeded", t.succeeded, "failed", t.failed)
	imp.publishDone(runID, models.SourcePhoneSpecsAPI, t)
	return buildBrandSyncReport(brand.BrandName, t)
}

// SyncAll imports every phone of every brand. A brand whose listing
// fails is skipped with a recorded error; the run always finishes with
// whatever partial results it accumulated.
func (imp *Importer) SyncAll(ctx context.Context) *models.FullSyncReport {
	runID := uuid.NewString()
	t := &tally{}

	brands, err := imp.Specs.ListBrands(ctx)
	if err != nil {
		t.errors = appendBounded(t.errors, fullErrorCap, fmt.Sprintf("brand listing: %v", err))
		imp.Log.Error("brand listing failed", "run_id", runID, "error", err)
		imp.publishDone(runID, models.SourcePhoneSpecsAPI, t)
		return buildFullSyncReport(0, t)
	}

	imp.Log.Info("full sync started", "run_id", runID, "brands", len(brands))

	for i, brand := range brands {
		phones, err := imp.Specs.ListPhones(ctx, brand.BrandSlug)
		if err != nil {
			t.errors = appendBounded(t.errors, fullErrorCap,
				fmt.Sprintf("%s: %v", brand.BrandName, err))
			imp.Log.Warn("brand skipped", "run_id", runID, "brand", brand.BrandName, "error", err)
			continue
		}

		imp.syncPhones(ctx, runID, brand, phones, t, fullErrorCap, fullImportedCap)

		imp.Events.Publish(progress.ImportEvent{
			Type: progress.EventBrand, RunID: runID, Source: models.SourcePhoneSpecsAPI,
			Brand: brand.BrandName, Succeeded: t.succeeded, Failed: t.failed,
			At: time.Now().UTC(),
		})

		if imp.BrandDelay > 0 && i < len(brands)-1 {
			time.Sleep(imp.BrandDelay)
		}
	}

	imp.Log.Info("full sync finished",
		"run_id", runID, "brands", len(brands),
		"total", t.total, "succeeded", t.succeeded, "failed", t.failed)
	imp.publishDone(runID, models.SourcePhoneSpecsAPI, t)
	return buildFullSyncReport(len(brands), t)
}

// syncPhones processes one brand's phone list sequentially. importedCap
// of 0 disables the imported-identifiers list (single-brand responses
// do not carry one).
func (imp *Importer) syncPhones(ctx context.Context, runID string, brand specsource.Brand, phones []specsource.PhoneSummary, t *tally, errCap, importedCap int) {
	for _, phone := range phones {
		spec, err := imp.fetchAndNormalize(ctx, phone)

		switch {
		case err != nil:
			t.failure(fmt.Sprintf("%s %s: %v", brand.BrandName, phone.PhoneName, err), errCap)
			imp.publishRecord(runID, models.SourcePhoneSpecsAPI, brand.BrandName, phone.PhoneName, 0, err, t)
			continue
		default:
			dedupe := &Deduplicator{Repo: imp.Repo, Policy: UpsertDuplicate}
			if _, err := dedupe.Apply(ctx, spec); err != nil {
				t.failure(fmt.Sprintf("%s %s: %v", brand.BrandName, phone.PhoneName, err), errCap)
				imp.publishRecord(runID, models.SourcePhoneSpecsAPI, spec.Brand, spec.Model, 0, err, t)
				continue
			}
		}

		if importedCap > 0 {
			t.success(spec.Identity(), importedCap)
		} else {
			t.total++
			t.succeeded++
		}
		imp.publishRecord(runID, models.SourcePhoneSpecsAPI, spec.Brand, spec.Model, 0, nil, t)

		if imp.PhoneDelay > 0 {
			time.Sleep(imp.PhoneDelay)
		}
	}
}

func (imp *Importer) fetchAndNormalize(ctx context.Context, phone specsource.PhoneSummary) (*models.PhoneSpec, error) {
	detail, err := imp.Specs.GetPhoneDetail(ctx, phone.Detail)
	if err != nil {
		return nil, err
	}
	return FromDetail(detail)
}

func (imp *Importer) publishRecord(runID, source, brand, model string, row int, err error, t *tally) {
	ev := progress.ImportEvent{
		Type: progress.EventRecord, RunID: runID, Source: source,
		Brand: brand, Model: model, Row: row,
		Succeeded: t.succeeded, Failed: t.failed,
		At: time.Now().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	imp.Events.Publish(ev)
}

func (imp *Importer) publishDone(runID, source string, t *tally) {
	imp.Events.Publish(progress.ImportEvent{
		Type: progress.EventDone, RunID: runID, Source: source,
		Succeeded: t.succeeded, Failed: t.failed,
		At: time.Now().UTC(),
	})
}
