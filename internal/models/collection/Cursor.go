// This file contains the Cursor struct, the document served on /events.
// A cursor either describes an infinite forward-only collection (only `current` set) or a paginated one
// (`total`, `first`, `last`, `pages` and `currentPage` set).
// Unset fields are serialized as explicit nulls, which is what the viewer checks for.

package collection

// Cursor represents a position in a browsable collection of scenes.
type Cursor struct {
	Total       *int    `json:"total"`
	First       *string `json:"first"`
	Last        *string `json:"last"`
	Pages       *int    `json:"pages"`
	CurrentPage *int    `json:"currentPage"`
	Current     *int    `json:"current"`
}

// ForwardOnly returns a cursor over an infinite forward-only collection positioned at current.
func ForwardOnly(current int) *Cursor {
	return &Cursor{Current: &current}
}
