package domain

// Page describes one page of a listing.
type Page struct {
	Page    int
	Pages   int
	PerPage int
	Total   int
	HasNext bool
	HasPrev bool
}

// NewPage derives pagination metadata from a total row count.
func NewPage(page, perPage, total int) Page {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	return Page{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
