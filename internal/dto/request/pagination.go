package request

// PaginatedRequest is read from the page, limit and search query parameters.
type PaginatedRequest struct {
	Page   int    `json:"page" validate:"min=1"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Search string `json:"search"`
}

// maxOffset bounds how deep a listing can page.
const maxOffset = 1_000_000

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	perPage := p.PerPage()
	if p.Page-1 > maxOffset/perPage {
		return maxOffset
	}
	return (p.Page - 1) * perPage
}

func (p PaginatedRequest) PerPage() int {
	if p.Limit < 1 {
		return 10
	}
	if p.Limit > 100 {
		return 100
	}
	return p.Limit
}

func (p PaginatedRequest) CurrentPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
