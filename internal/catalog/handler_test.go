package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phoneflip/pkg/models"
)

func newCatalogRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/api/phone-specs"))
	return r
}

func intp(n int) *int { return &n }

func seedRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	ctx := context.Background()

	specs := []*models.PhoneSpec{
		{
			Brand: "Samsung", Model: "Samsung Galaxy S24 Ultra",
			StorageGB: intp(256), RAMGB: intp(12), BatteryMAH: intp(5000),
			CameraMP: "200MP", DisplaySize: "6.8 inches",
			Processor: "Snapdragon 8 Gen 3", OperatingSystem: "Android 14",
			Network5G:     "Yes",
			PriceRangeMin: intp(430000), PriceRangeMax: intp(480000),
		},
		{Brand: "Apple", Model: "iPhone 15"},
	}
	for _, s := range specs {
		_, err := repo.Insert(ctx, s)
		require.NoError(t, err)
	}
	return repo
}

func TestListPhoneSpecs(t *testing.T) {
	router := newCatalogRouter(seedRepo(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/phone-specs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int                `json:"total"`
		Items []models.PhoneSpec `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Apple", resp.Items[0].Brand, "listing is brand/model ordered")
}

func TestListPhoneSpecsBrandFilter(t *testing.T) {
	router := newCatalogRouter(seedRepo(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/phone-specs?brand=samsung", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.PhoneSpec `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Samsung", resp.Items[0].Brand)
}

func TestGetPhoneSpecByID(t *testing.T) {
	repo := NewMemoryRepo()
	spec := &models.PhoneSpec{Brand: "Apple", Model: "iPhone 15"}
	id, err := repo.Insert(context.Background(), spec)
	require.NoError(t, err)

	router := newCatalogRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/phone-specs/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.PhoneSpec
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "iPhone 15", got.Model)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/phone-specs/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComparePhones(t *testing.T) {
	router := newCatalogRouter(seedRepo(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/phone-specs/compare", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var phones []models.ComparePhone
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &phones))
	require.Len(t, phones, 2)

	// Sparse record: every projected field degrades to its default.
	sparse := phones[0]
	assert.Equal(t, "Apple iPhone 15", sparse.DisplayName)
	assert.Equal(t, "N/A", sparse.Storage)
	assert.Equal(t, "N/A", sparse.Battery)
	assert.Equal(t, "4G", sparse.Network)
	assert.Equal(t, "Price not available", sparse.PriceRange)
	assert.Equal(t, 0, sparse.Price)

	full := phones[1]
	assert.Equal(t, "Galaxy S24 Ultra", full.Model, "duplicated brand prefix is trimmed")
	assert.Equal(t, "Samsung Galaxy S24 Ultra", full.DisplayName)
	assert.Equal(t, "256GB", full.Storage)
	assert.Equal(t, "12GB", full.RAM)
	assert.Equal(t, "5000 mAh", full.Battery)
	assert.Equal(t, "200MP", full.Camera)
	assert.Equal(t, "5G", full.Network)
	assert.Equal(t, 430000, full.Price)
	assert.Equal(t, "PKR 430000 - 480000", full.PriceRange)
}
