package response

import "event-ticketing/pkg/utils"

type PaginatedResponse[T any] struct {
	Data       []T
	Pagination utils.Pagination
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: utils.Pagination{
			Current:    page,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, perPage),
		},
	}
}
