package pagination

// AdjustAfterRemoval returns the page to show after one item was removed
// from a listing that held totalBefore items.
//
// The current page is kept unless it no longer exists once the item is gone,
// in which case the new last page is returned. Page 1 is never decremented.
func AdjustAfterRemoval(currentPage, pageSize, totalBefore int) int {
	if currentPage <= MinPage || pageSize <= 0 || totalBefore <= 0 {
		return currentPage
	}

	pagesAfter := TotalPages(totalBefore-1, pageSize)
	if currentPage <= pagesAfter {
		return currentPage
	}
	return max(pagesAfter, MinPage)
}
