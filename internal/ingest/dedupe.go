package ingest

import (
	"context"
	"fmt"

	"phoneflip/internal/catalog"
	"phoneflip/pkg/models"
)

// DuplicatePolicy decides what happens when an incoming record's
// (brand, model) identity already exists in the catalog. The two
// ingestion paths intentionally differ: CSV uploads reject duplicates,
// API syncs refresh them in place.
type DuplicatePolicy int

const (
	RejectDuplicate DuplicatePolicy = iota
	UpsertDuplicate
)

// UpsertOutcome is the terminal state of a record that reached the
// catalog boundary.
type UpsertOutcome int

const (
	Inserted UpsertOutcome = iota
	Updated
	RejectedDuplicate
)

// Deduplicator performs the identity lookup and the insert-or-update
// decision. There is no skip-if-identical shortcut: under
// UpsertDuplicate an update always happens, even when nothing changed.
type Deduplicator struct {
	Repo   catalog.Repository
	Policy DuplicatePolicy
}

func (d *Deduplicator) Apply(ctx context.Context, spec *models.PhoneSpec) (UpsertOutcome, error) {
	existing, err := d.Repo.FindByIdentity(ctx, spec.Brand, spec.Model)
	if err != nil {
		return 0, fmt.Errorf("identity lookup %q/%q: %w", spec.Brand, spec.Model, err)
	}

	if existing == nil {
		if _, err := d.Repo.Insert(ctx, spec); err != nil {
			return 0, fmt.Errorf("insert %q/%q: %w", spec.Brand, spec.Model, err)
		}
		return Inserted, nil
	}

	if d.Policy == RejectDuplicate {
		return RejectedDuplicate, nil
	}

	if err := d.Repo.Update(ctx, existing.ID.Hex(), spec); err != nil {
		return 0, fmt.Errorf("update %q/%q: %w", spec.Brand, spec.Model, err)
	}
	return Updated, nil
}
