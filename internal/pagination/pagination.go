// Package pagination holds the page-window arithmetic shared by the
// list endpoints. Two strategies exist: standard offset pagination and
// a hybrid mode that fetches five pages' worth of rows per request so a
// client paging sequentially stays within one batch.
package pagination

// PagesPerFetch is the batch width of hybrid mode: every fetch returns
// up to this many pages of rows, aligned to a batch boundary.
const PagesPerFetch = 5

// Clamp normalizes page and perPage. Page defaults to 1, perPage to
// def, and perPage never exceeds max.
func Clamp(page, perPage, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = def
	}
	if max > 0 && perPage > max {
		perPage = max
	}
	return page, perPage
}

// Offset returns the standard-mode offset for a page.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// Window returns the hybrid-mode offset and limit for a page. The
// offset is aligned to the start of the 5-page batch containing the
// requested page, so any page inside the same batch yields the same
// window: pages 1-5 share offset 0, pages 6-10 share offset 5*perPage,
// and so on.
func Window(page, perPage int) (offset, limit int) {
	offset = (page - 1) / PagesPerFetch * PagesPerFetch * perPage
	limit = PagesPerFetch * perPage
	return
}

// LastPage returns the number of the final page for a total row count.
// Zero rows still report page 1 so clients always have a valid page.
func LastPage(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return last
}
