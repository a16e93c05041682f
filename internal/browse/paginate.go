package browse

import "github.com/example/furnishop/internal/catalog"

// Page is one bounded slice of a filtered and sorted product sequence
type Page struct {
	Visible    []catalog.Product `json:"visible"`
	TotalPages int               `json:"total_pages"`
}

// Paginate slices products into the requested page. TotalPages is never
// zero: an empty input is one empty page. The requested page is not clamped;
// asking for a page past the end yields an empty Visible slice with the true
// page count, mirroring how the storefront silently renders nothing there.
// Non-positive page or pageSize values are treated the same way.
func Paginate(products []catalog.Product, page, pageSize int) Page {
	if pageSize <= 0 || page <= 0 {
		return Page{Visible: []catalog.Product{}, TotalPages: 1}
	}

	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return Page{Visible: []catalog.Product{}, TotalPages: totalPages}
	}

	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}

	visible := make([]catalog.Product, end-start)
	copy(visible, products[start:end])
	return Page{Visible: visible, TotalPages: totalPages}
}
