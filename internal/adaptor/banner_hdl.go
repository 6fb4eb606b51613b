package adaptor

import (
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type BannerHandler struct {
	service usecase.BannerService
	log     *zap.Logger
}

func NewBannerHandler(service usecase.BannerService, log *zap.Logger) *BannerHandler {
	return &BannerHandler{
		service: service,
		log:     log.With(zap.String("handler", "banner")),
	}
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.BannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create banner")
		return
	}

	utils.ResponseSuccess(w, "Success create banner", banner)
}

func (h *BannerHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find banners")
		return
	}

	utils.ResponsePaginated(w, "Success find all banner", result.Data, result.Pagination)
}

func (h *BannerHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	banner, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "find banner")
		return
	}

	utils.ResponseSuccess(w, "Success find one banner", banner)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.BannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "update banner")
		return
	}

	utils.ResponseSuccess(w, "Success update banner", banner)
}

func (h *BannerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	banner, err := h.service.Remove(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "remove banner")
		return
	}

	utils.ResponseSuccess(w, "Success remove banner", banner)
}
