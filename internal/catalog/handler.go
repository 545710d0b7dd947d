package catalog

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"phoneflip/pkg/models"
)

type Handler struct {
	Repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)               // GET /phone-specs
	rg.GET("/compare", h.compare)    // GET /phone-specs/compare
	rg.GET("/:id", h.getByID)        // GET /phone-specs/:id
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Brand:  c.Query("brand"),
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset"), 0),
	}

	total, err := h.Repo.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	spec, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spec ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if spec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, spec)
}

// compare serves every spec in a compare-friendly projection: unit
// suffixes on memory/battery, a 4G/5G tag and the legacy price range
// rendered as display text.
func (h *Handler) compare(c *gin.Context) {
	out := make([]models.ComparePhone, 0, 64)

	const page = 100
	for offset := 0; ; offset += page {
		batch, err := h.Repo.List(c.Request.Context(), ListQuery{Limit: page, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed"})
			return
		}
		for i := range batch {
			out = append(out, toComparePhone(&batch[i]))
		}
		if len(batch) < page {
			break
		}
	}

	c.JSON(http.StatusOK, out)
}

func toComparePhone(s *models.PhoneSpec) models.ComparePhone {
	model := models.TrimBrandPrefix(s.Brand, s.Model)

	cp := models.ComparePhone{
		ID:              s.ID.Hex(),
		Brand:           s.Brand,
		Model:           model,
		DisplayName:     s.Brand + " " + model,
		Photos:          []string{"/api/placeholder/300/200"},
		Storage:         "N/A",
		RAM:             "N/A",
		Battery:         "N/A",
		Camera:          "N/A",
		ScreenSize:      "N/A",
		Processor:       "N/A",
		OperatingSystem: "N/A",
		Network:         "4G",
		PriceRange:      "Price not available",
	}

	if s.StorageGB != nil {
		cp.Storage = fmt.Sprintf("%dGB", *s.StorageGB)
	}
	if s.RAMGB != nil {
		cp.RAM = fmt.Sprintf("%dGB", *s.RAMGB)
	}
	if s.BatteryMAH != nil {
		cp.Battery = fmt.Sprintf("%d mAh", *s.BatteryMAH)
	}
	if s.CameraMP != "" {
		cp.Camera = s.CameraMP
	}
	if s.DisplaySize != "" {
		cp.ScreenSize = s.DisplaySize
	}
	if s.Processor != "" {
		cp.Processor = s.Processor
	}
	if s.OperatingSystem != "" {
		cp.OperatingSystem = s.OperatingSystem
	}
	if s.Network5G == "Yes" {
		cp.Network = "5G"
	}
	if s.PriceRangeMin != nil {
		cp.Price = *s.PriceRangeMin
		max := 0
		if s.PriceRangeMax != nil {
			max = *s.PriceRangeMax
		}
		cp.PriceRange = fmt.Sprintf("PKR %d - %d", *s.PriceRangeMin, max)
	}

	return cp
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
