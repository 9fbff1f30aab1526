package content

import "sort"

// Lister produces a list of items.
type Lister interface {
	List() []Item
}

// ListerFunc adapts a function to Lister.
type ListerFunc func() []Item

func (f ListerFunc) List() []Item { return f() }

// BuildCollection merges the listers' items in order. An item whose id was
// already produced by an earlier lister is dropped; duplicates inside a single
// lister are kept. The result is sorted newest first.
func BuildCollection(listers ...Lister) []Item {
	seen := make(map[string]struct{})
	out := []Item{}
	for _, l := range listers {
		if l == nil {
			continue
		}
		items := l.List()
		added := make([]string, 0, len(items))
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			out = append(out, it)
			added = append(added, it.ID)
		}
		for _, id := range added {
			seen[id] = struct{}{}
		}
	}
	SortByDate(out)
	return out
}

// SortByDate orders items by date, newest first. Items with equal dates keep
// their relative order.
func SortByDate(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}

// Filter returns the items classified as c, in their original order.
func Filter(items []Item, c Category) []Item {
	out := []Item{}
	for _, it := range items {
		if Is(it, c) {
			out = append(out, it)
		}
	}
	return out
}
