package wire

import (
	"event-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Region lookups are public and read-only.
func wireRegion(r chi.Router, h *adaptor.RegionHandler) {
	r.Get("/api/regions", h.GetAllProvinces)
	r.Get("/api/regions/{id}/province", h.GetProvince)
	r.Get("/api/regions/{id}/regency", h.GetRegency)
	r.Get("/api/regions/{id}/district", h.GetDistrict)
	r.Get("/api/regions/{id}/village", h.GetVillage)
	r.Get("/api/regions-search", h.FindByCity)
}
