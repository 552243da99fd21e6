package entity

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest é a página pedida pelo painel, já normalizada.
type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(req PageRequest, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, TotalPages: pages}
}

// Paginate recorta uma lista em memória. Página fora do intervalo devolve lista vazia.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	req := NewPageRequest(page, limit)
	pag := NewPagination(req, len(items))

	start := req.Offset()
	if start >= len(items) {
		return []T{}, pag
	}
	end := start + req.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pag
}
