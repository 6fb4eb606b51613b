package adaptor

import (
	"net/http"
	"strconv"

	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RegionHandler struct {
	service usecase.RegionService
	log     *zap.Logger
}

func NewRegionHandler(service usecase.RegionService, log *zap.Logger) *RegionHandler {
	return &RegionHandler{
		service: service,
		log:     log.With(zap.String("handler", "region")),
	}
}

func regionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.ResponseNotFound(w, "Region not found")
		return 0, false
	}
	return id, true
}

func (h *RegionHandler) GetAllProvinces(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.service.GetAllProvinces(r.Context())
	if err != nil {
		writeError(w, h.log, err, "get provinces")
		return
	}

	utils.ResponseSuccess(w, "Success get all provinces", provinces)
}

func (h *RegionHandler) GetProvince(w http.ResponseWriter, r *http.Request) {
	id, ok := regionID(w, r)
	if !ok {
		return
	}

	province, err := h.service.GetProvince(r.Context(), int(id))
	if err != nil {
		writeError(w, h.log, err, "get province")
		return
	}

	utils.ResponseSuccess(w, "Success get regencies by id province", province)
}

func (h *RegionHandler) GetRegency(w http.ResponseWriter, r *http.Request) {
	id, ok := regionID(w, r)
	if !ok {
		return
	}

	regency, err := h.service.GetRegency(r.Context(), int(id))
	if err != nil {
		writeError(w, h.log, err, "get regency")
		return
	}

	utils.ResponseSuccess(w, "Success get regency", regency)
}

func (h *RegionHandler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	id, ok := regionID(w, r)
	if !ok {
		return
	}

	district, err := h.service.GetDistrict(r.Context(), int(id))
	if err != nil {
		writeError(w, h.log, err, "get district")
		return
	}

	utils.ResponseSuccess(w, "Success get district", district)
}

func (h *RegionHandler) GetVillage(w http.ResponseWriter, r *http.Request) {
	id, ok := regionID(w, r)
	if !ok {
		return
	}

	village, err := h.service.GetVillage(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get village")
		return
	}

	utils.ResponseSuccess(w, "Success get village", village)
}

// FindByCity handles GET /api/regions-search?name=
func (h *RegionHandler) FindByCity(w http.ResponseWriter, r *http.Request) {
	regencies, err := h.service.FindByCity(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, h.log, err, "search regions")
		return
	}

	utils.ResponseSuccess(w, "Success get region by city name", regencies)
}
