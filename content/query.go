package content

import "strings"

// DefaultPageSize is the page size used when a query names none.
const DefaultPageSize = 10

// Query narrows and pages a collection. Text and Tags are ANDed; an empty
// value of either matches everything.
type Query struct {
	Text     string
	Tags     []string
	Page     int
	PageSize int
}

// Result is one page of matches.
type Result struct {
	Items      []Item `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

// Search filters items by q and returns the requested page. Out-of-range
// pages are clamped, so a result always describes a real page.
func Search(items []Item, q Query) Result {
	terms := strings.Fields(strings.ToLower(q.Text))
	tags := make(map[string]struct{}, len(q.Tags))
	for _, t := range q.Tags {
		if t = normalizeTag(t); t != "" {
			tags[t] = struct{}{}
		}
	}

	matched := []Item{}
	for _, it := range items {
		if matchesText(it, terms) && matchesTags(it, tags) {
			matched = append(matched, it)
		}
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(matched) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page := min(max(q.Page, 1), pages)

	start := min((page-1)*size, len(matched))
	end := min(start+size, len(matched))
	return Result{
		Items:      matched[start:end],
		Total:      len(matched),
		Page:       page,
		TotalPages: pages,
	}
}

func matchesText(it Item, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	fields := []string{
		strings.ToLower(it.Title),
		strings.ToLower(it.Excerpt),
		strings.ToLower(it.Body),
	}
	for _, term := range terms {
		for _, f := range fields {
			if strings.Contains(f, term) {
				return true
			}
		}
	}
	return false
}

func matchesTags(it Item, want map[string]struct{}) bool {
	if len(want) == 0 {
		return true
	}
	for _, t := range it.Tags {
		if _, ok := want[normalizeTag(t)]; ok {
			return true
		}
	}
	return false
}
