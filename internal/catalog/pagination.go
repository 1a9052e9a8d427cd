package catalog

// MaxPagesShown bounds the width of the pagination window.
const MaxPagesShown = 5

// PageWindow is the set of page links shown around the current page.
type PageWindow struct {
	Current int   `json:"current"`
	Total   int   `json:"total"`
	Pages   []int `json:"pages"`
	First   bool  `json:"first"`
	Prev    bool  `json:"prev"`
	Next    bool  `json:"next"`
	Last    bool  `json:"last"`
}

// Window computes the visible page numbers and which navigation controls
// are enabled.
func Window(page, totalPages int) PageWindow {
	w := PageWindow{Current: page, Total: totalPages, Pages: []int{}}
	if totalPages < 1 {
		return w
	}

	var from, to int
	switch {
	case totalPages <= MaxPagesShown:
		from, to = 1, totalPages
	case page <= 3:
		from, to = 1, MaxPagesShown
	case page >= totalPages-2:
		from, to = totalPages-MaxPagesShown+1, totalPages
	default:
		from, to = page-2, page+2
	}
	for p := from; p <= to; p++ {
		w.Pages = append(w.Pages, p)
	}

	w.First = page > 1
	w.Prev = page > 1
	w.Next = page < totalPages
	w.Last = page < totalPages
	return w
}
