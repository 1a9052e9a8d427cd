package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Shareable query parameter names.
const (
	ParamPage   = "page"
	ParamSearch = "search"
	ParamSort   = "sort"
	ParamTypes  = "types"
)

// Values encodes the state as flat query parameters. page and sort are
// always written; search and types only when set.
func (s QueryState) Values() url.Values {
	v := url.Values{}
	page := s.Page
	if page < 1 {
		page = 1
	}
	v.Set(ParamPage, strconv.Itoa(page))

	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}

	sort := s.Sort
	if sort == "" {
		sort = SortIDAsc
	}
	v.Set(ParamSort, string(sort))

	if len(s.Types) > 0 {
		v.Set(ParamTypes, strings.Join(s.Types, ","))
	}
	return v
}

// Encode returns the canonical query string for the state.
func (s QueryState) Encode() string {
	return s.Values().Encode()
}

// ParseQuery decodes query parameters into a state. Decoding is lenient:
// a missing or invalid page becomes 1, an unknown sort becomes id-asc, and
// empty, unknown or repeated type tokens are dropped.
func ParseQuery(v url.Values) QueryState {
	state := DefaultQueryState()

	if raw := v.Get(ParamPage); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			state.Page = page
		}
	}

	state.Search = v.Get(ParamSearch)

	if key, ok := ParseSortKey(v.Get(ParamSort)); ok {
		state.Sort = key
	}

	if raw := v.Get(ParamTypes); raw != "" {
		seen := make(map[string]struct{})
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if !IsCategory(t) {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			state.Types = append(state.Types, t)
		}
	}
	return state
}

// ToggleType adds tag to the filter, or removes it when already present.
// Changing the filter always returns to the first page.
func (s QueryState) ToggleType(tag string) QueryState {
	next := make([]string, 0, len(s.Types)+1)
	removed := false
	for _, t := range s.Types {
		if t == tag {
			removed = true
			continue
		}
		next = append(next, t)
	}
	if !removed {
		next = append(next, tag)
	}
	if len(next) == 0 {
		next = nil
	}
	s.Types = next
	s.Page = 1
	return s
}
