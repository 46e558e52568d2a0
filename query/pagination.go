package query

// PageLink is one rendered pagination control. A Gap entry marks an ellipsis
// between two pages that are not adjacent in value.
type PageLink struct {
	Page int
	Gap  bool
}

// PageLinks returns the page-link set for the current/last pair: the first
// and last pages plus a window of two around the current page, ascending,
// with gap markers inserted between non-adjacent neighbors.
func PageLinks(current, last int) []PageLink {
	if last < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	links := make([]PageLink, 0, 7)
	prev := 0
	for page := 1; page <= last; page++ {
		if page != 1 && page != last && abs(page-current) > 2 {
			continue
		}
		if prev != 0 && page-prev > 1 {
			links = append(links, PageLink{Gap: true})
		}
		links = append(links, PageLink{Page: page})
		prev = page
	}
	return links
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
