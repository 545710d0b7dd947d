package ingest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"phoneflip/internal/specsource"
)

type Handler struct {
	Importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{Importer: importer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/phone-specs/bulk-import", h.bulkImport)
	rg.POST("/phone-specs/sync/:brand", h.syncBrand)
	rg.POST("/phone-specs/sync", h.syncAll)
}

// bulkImport ingests an uploaded CSV. A wrong file extension rejects
// the whole request before any record is touched; everything after that
// is per-row and reported, never a 5xx.
func (h *Handler) bulkImport(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	if err := CheckCSVExtension(file.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open upload"})
		return
	}
	defer f.Close()

	report, err := h.Importer.ImportCSV(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// syncBrand imports one brand from the external specs API. The brand
// slug comes from the URL; the display name is resolved against the
// brand listing when possible.
func (h *Handler) syncBrand(c *gin.Context) {
	slug := c.Param("brand")

	brand := specsource.Brand{BrandName: slug, BrandSlug: slug}
	if brands, err := h.Importer.Specs.ListBrands(c.Request.Context()); err == nil {
		for _, b := range brands {
			if strings.EqualFold(b.BrandSlug, slug) || strings.EqualFold(b.BrandName, slug) {
				brand = b
				break
			}
		}
	}

	c.JSON(http.StatusOK, h.Importer.SyncBrand(c.Request.Context(), brand))
}

func (h *Handler) syncAll(c *gin.Context) {
	c.JSON(http.StatusOK, h.Importer.SyncAll(c.Request.Context()))
}
