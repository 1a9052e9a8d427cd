package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed number of items per browse page.
const PageSize = 24

type SortKey string

const (
	SortIDAsc    SortKey = "id-asc"
	SortIDDesc   SortKey = "id-desc"
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
)

var SortKeys = []SortKey{SortIDAsc, SortIDDesc, SortNameAsc, SortNameDesc}

// ParseSortKey reports whether s is one of the four sort tokens.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// QueryState is the user-controlled view state of the browse page.
type QueryState struct {
	Search string
	Types  []string
	Sort   SortKey
	Page   int
}

func DefaultQueryState() QueryState {
	return QueryState{Sort: SortIDAsc, Page: 1}
}

// Result is the outcome of Apply. State echoes the input with Page corrected
// when the requested page no longer exists.
type Result struct {
	Items      []Item
	TotalCount int
	TotalPages int
	State      QueryState
}

// Apply filters, sorts and paginates items. It never modifies items and the
// same input always yields the same output.
func Apply(items []Item, state QueryState) Result {
	filtered := filterItems(items, state.Search, state.Types)
	sortItems(filtered, state.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	if state.Page < 1 {
		state.Page = 1
	}
	if state.Page > totalPages && totalPages > 0 {
		state.Page = 1
	}

	start := min((state.Page-1)*PageSize, total)
	end := min(start+PageSize, total)

	return Result{
		Items:      filtered[start:end:end],
		TotalCount: total,
		TotalPages: totalPages,
		State:      state,
	}
}

func filterItems(items []Item, search string, types []string) []Item {
	needle := strings.ToLower(search)

	var wanted map[string]struct{}
	if len(types) > 0 {
		wanted = make(map[string]struct{}, len(types))
		for _, t := range types {
			wanted[t] = struct{}{}
		}
	}

	out := make([]Item, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		if wanted != nil && !hasAnyCategory(item, wanted) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strconv.Itoa(item.ID), needle)
}

func hasAnyCategory(item Item, wanted map[string]struct{}) bool {
	for _, c := range item.Categories {
		if _, ok := wanted[c]; ok {
			return true
		}
	}
	return false
}

// sortItems orders items in place. The sort is stable, so items with equal
// keys keep their input order. Unknown keys leave the order untouched.
func sortItems(items []Item, key SortKey) {
	switch key {
	case SortIDAsc:
		slices.SortStableFunc(items, func(a, b Item) int { return cmp.Compare(a.ID, b.ID) })
	case SortIDDesc:
		slices.SortStableFunc(items, func(a, b Item) int { return cmp.Compare(b.ID, a.ID) })
	case SortNameAsc:
		col := newNameCollator()
		slices.SortStableFunc(items, func(a, b Item) int { return col.CompareString(a.Name, b.Name) })
	case SortNameDesc:
		col := newNameCollator()
		slices.SortStableFunc(items, func(a, b Item) int { return col.CompareString(b.Name, a.Name) })
	}
}

// A Collator keeps internal buffers, so each sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English)
}

// Suggest returns up to limit items whose name contains term, in input order.
func Suggest(items []Item, term string, limit int) []Item {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || limit < 1 {
		return nil
	}

	var out []Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
