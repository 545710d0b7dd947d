package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phoneflip/internal/catalog"
	"phoneflip/pkg/models"
)

func TestDeduplicatorRejectPolicy(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryRepo()
	d := &Deduplicator{Repo: repo, Policy: RejectDuplicate}

	outcome, err := d.Apply(ctx, &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15"})
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)

	outcome, err = d.Apply(ctx, &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15"})
	require.NoError(t, err, "a rejected duplicate is an outcome, not an error")
	assert.Equal(t, RejectedDuplicate, outcome)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDeduplicatorUpsertPolicy(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryRepo()
	d := &Deduplicator{Repo: repo, Policy: UpsertDuplicate}

	first := &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15", RAM: "6GB"}
	outcome, err := d.Apply(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)

	second := &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15", RAM: "8GB"}
	outcome, err = d.Apply(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "an upsert refreshes in place, it never duplicates")

	got, err := repo.FindByIdentity(ctx, "Apple", "iPhone 15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "8GB", got.RAM)
	assert.Equal(t, first.ID, got.ID, "identity and _id survive the update")
}

func TestDeduplicatorIdentityIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryRepo()
	d := &Deduplicator{Repo: repo, Policy: RejectDuplicate}

	_, err := d.Apply(ctx, &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15"})
	require.NoError(t, err)

	outcome, err := d.Apply(ctx, &models.PhoneSpec{Brand: "apple", Model: "iphone 15"})
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome, "casing differences are distinct identities")
}
