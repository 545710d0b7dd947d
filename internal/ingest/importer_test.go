package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phoneflip/internal/catalog"
	"phoneflip/internal/specsource"
	"phoneflip/pkg/logger"
	"phoneflip/pkg/models"
)

func newTestImporter(repo catalog.Repository, specsBase string) *Importer {
	var specs *specsource.Client
	if specsBase != "" {
		specs = specsource.NewClient(specsBase)
	}
	// Delays stay zero so sync tests run instantly.
	return &Importer{Repo: repo, Specs: specs, Log: logger.NewNop()}
}

func TestImportCSVPerRowIsolation(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	imp := newTestImporter(repo, "")

	in := strings.Join([]string{
		"brand,model,price_pkr",
		"Apple,iPhone 15,Rs 334999",
		"Samsung,,Rs 120000",
		"Samsung,Galaxy S24,Rs 260000",
	}, "\n")

	report, err := imp.ImportCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 2, report.SuccessfulImports)
	assert.Equal(t, 1, report.FailedImports)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Row 2")
	assert.Contains(t, report.Errors[0], "missing model")
	assert.Equal(t, []string{"Apple iPhone 15", "Samsung Galaxy S24"}, report.ImportedSpecs)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestImportCSVRejectsDuplicates(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	imp := newTestImporter(repo, "")

	in := "brand,model\nApple,iPhone 15\nApple,iPhone 15\n"

	report, err := imp.ImportCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessfulImports)
	assert.Equal(t, 1, report.FailedImports)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Apple iPhone 15 already exists",
		"duplicates are visible within the same run")

	// A full re-import fails every row.
	report, err = imp.ImportCSV(context.Background(), strings.NewReader("brand,model\nApple,iPhone 15\n"))
	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, 0, report.SuccessfulImports)
	assert.Equal(t, 1, report.FailedImports)
	assert.Empty(t, report.ImportedSpecs)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestImportCSVBadPriceStillImports(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	imp := newTestImporter(repo, "")

	in := "brand,model,price_pkr\nApple,iPhone 15,call for price\n"
	report, err := imp.ImportCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessfulImports)

	got, err := repo.FindByIdentity(context.Background(), "Apple", "iPhone 15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.PricePKR)
}

func TestImportCSVUnreadableHeader(t *testing.T) {
	imp := newTestImporter(catalog.NewMemoryRepo(), "")
	_, err := imp.ImportCSV(context.Background(), strings.NewReader(""))
	assert.Error(t, err, "only a missing header fails the whole request")
}

// specsFixture serves the upstream wire format from an httptest server:
// enveloped responses, per-brand pagination and per-phone detail pages.
type specsFixture struct {
	srv       *httptest.Server
	brandFail bool // make the "broken" brand's phone listing 500
}

func newSpecsFixture(t *testing.T) *specsFixture {
	t.Helper()
	f := &specsFixture{}

	mux := http.NewServeMux()
	mux.HandleFunc("/brands", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": true, "data": []map[string]any{
			{"brand_name": "Apple", "brand_slug": "apple", "detail": f.srv.URL + "/brands/apple"},
			{"brand_name": "Broken", "brand_slug": "broken", "detail": f.srv.URL + "/brands/broken"},
		}})
	})
	mux.HandleFunc("/brands/apple", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		phones := []map[string]any{
			{"phone_name": "iPhone 15 Pro Max", "slug": "iphone-15-pro-max", "detail": f.srv.URL + "/phones/iphone-15-pro-max"},
		}
		current := 1
		if page == "2" {
			phones = []map[string]any{
				{"phone_name": "iPhone 15", "slug": "iphone-15", "detail": f.srv.URL + "/phones/iphone-15"},
			}
			current = 2
		}
		writeJSON(w, map[string]any{"status": true, "data": map[string]any{
			"phones": phones, "current_page": current, "last_page": 2,
		}})
	})
	mux.HandleFunc("/brands/broken", func(w http.ResponseWriter, r *http.Request) {
		if f.brandFail {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"status": true, "data": map[string]any{
			"phones": []map[string]any{}, "current_page": 1, "last_page": 1,
		}})
	})
	mux.HandleFunc("/phones/", func(w http.ResponseWriter, r *http.Request) {
		name := "iPhone 15"
		price := "Rs 334,999"
		if strings.HasSuffix(r.URL.Path, "iphone-15-pro-max") {
			name = "iPhone 15 Pro Max"
			price = "Rs 520,000"
		}
		writeJSON(w, map[string]any{"status": true, "data": map[string]any{
			"brand":        "Apple",
			"phone_name":   name,
			"release_date": "Released 2023, September 22",
			"specifications": []map[string]any{
				{"title": "Misc", "specs": []map[string]any{
					{"key": "Price", "val": []string{price}},
				}},
			},
		}})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestSyncBrandUpserts(t *testing.T) {
	f := newSpecsFixture(t)
	repo := catalog.NewMemoryRepo()
	imp := newTestImporter(repo, f.srv.URL)

	brand := specsource.Brand{BrandName: "Apple", BrandSlug: "apple"}

	report := imp.SyncBrand(context.Background(), brand)
	assert.True(t, report.Success)
	assert.Equal(t, "Apple", report.Brand)
	assert.Equal(t, 2, report.TotalPhones, "pagination is followed")
	assert.Equal(t, 2, report.SuccessfulImports)
	assert.Equal(t, 0, report.FailedImports)
	assert.Empty(t, report.Errors)

	got, err := repo.FindByIdentity(context.Background(), "Apple", "iPhone 15 Pro Max")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SourcePhoneSpecsAPI, got.Source)
	require.NotNil(t, got.PricePKR)
	assert.Equal(t, 520000, *got.PricePKR)

	// Re-sync refreshes in place: still two records, both successful.
	report = imp.SyncBrand(context.Background(), brand)
	assert.Equal(t, 2, report.SuccessfulImports)
	assert.Equal(t, 0, report.FailedImports)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSyncBrandListingFailure(t *testing.T) {
	f := newSpecsFixture(t)
	f.brandFail = true
	imp := newTestImporter(catalog.NewMemoryRepo(), f.srv.URL)

	report := imp.SyncBrand(context.Background(), specsource.Brand{BrandName: "Broken", BrandSlug: "broken"})
	assert.False(t, report.Success)
	assert.Equal(t, 0, report.TotalPhones)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Broken")
}

func TestSyncAllSkipsFailedBrand(t *testing.T) {
	f := newSpecsFixture(t)
	f.brandFail = true
	repo := catalog.NewMemoryRepo()
	imp := newTestImporter(repo, f.srv.URL)

	report := imp.SyncAll(context.Background())
	assert.True(t, report.Success)
	assert.Equal(t, "completed", report.Status)
	assert.Equal(t, 2, report.TotalBrands)
	assert.Equal(t, 2, report.TotalPhones)
	assert.Equal(t, 2, report.SuccessfulImports)
	assert.Equal(t, 0, report.FailedImports, "a skipped brand is not a phone failure")
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Broken")
	assert.Contains(t, report.ImportedPhones, "Apple iPhone 15 Pro Max")

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
