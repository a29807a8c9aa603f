package ginserver

import (
	"net/http"
	"sort"

	gin "github.com/gin-gonic/gin"

	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
	"archatara/internal/infra/store"
)

type CatalogStore interface {
	UnavailableUnits(date string) reservation.UnitSet
	Mode() store.Mode
}

// CatalogHandler serves the public, read-only venue endpoints.
type CatalogHandler struct {
	Venue *catalog.Catalog
	Store   CatalogStore
}

var _ CatalogHTTP = &CatalogHandler{}

type accommodationTypeResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	BasePrice      int      `json:"basePrice"`
	Capacity       int      `json:"capacity"`
	Units          []string `json:"units"`
	AllowsExtraBed bool     `json:"allowsExtraBed"`
	ExtraBedPrice  int      `json:"extraBedPrice,omitempty"`
}

func (h *CatalogHandler) Catalog(c *gin.Context) {
	types := h.Venue.Types()
	out := make([]accommodationTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, accommodationTypeResponse{
			ID:             t.ID,
			Name:           t.Name,
			Description:    t.Description,
			BasePrice:      t.BasePrice,
			Capacity:       t.Capacity,
			Units:          t.Units(),
			AllowsExtraBed: t.AllowsExtraBed,
			ExtraBedPrice:  t.ExtraBedPrice,
		})
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

func (h *CatalogHandler) Activities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activities": h.Venue.Activities()})
}

// Availability reports which units are taken for a date. Units of a
// rejected booking count as free.
func (h *CatalogHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	taken := h.Store.UnavailableUnits(date)
	units := make([]string, 0, len(taken))
	for unit := range taken {
		units = append(units, unit)
	}
	sort.Strings(units)
	c.JSON(http.StatusOK, gin.H{"date": date, "unavailableUnits": units})
}

func (h *CatalogHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.Store.Mode()})
}
