package adaptor

import (
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create category")
		return
	}

	utils.ResponseSuccess(w, "Success create category", category)
}

func (h *CategoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "find categories")
		return
	}

	utils.ResponsePaginated(w, "Success find all category", result.Data, result.Pagination)
}

func (h *CategoryHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	category, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "find category")
		return
	}

	utils.ResponseSuccess(w, "Success find one category", category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Success update category", category)
}

func (h *CategoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	category, err := h.service.Remove(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "remove category")
		return
	}

	utils.ResponseSuccess(w, "Success remove category", category)
}
