// Package inventory is the C6/C7 HTTP+JSON client for the remote inventory
// API: authenticated GETs against category and part resources, and the
// category-path index built from them.
//
// What: Types and methods mirroring the remote API's endpoints
// (/api/user/token, /api/part/category/, /api/part/, /api/part/<pk>/,
// /api/part/<pk>/metadata/, /api/part/parameter/).
// How: encoding/json over net/http — plain authenticated GET+JSON needs
// nothing beyond the standard library's own HTTP client.
// Why: The driver never touches a database engine; this package is the
// entire "backend" it has.
package inventory

// Category is a node in the remote inventory's hierarchical grouping of
// parts; it acts as a pseudo-table.
type Category struct {
	PK         int64  `json:"pk"`
	Name       string `json:"name"`
	Parent     *int64 `json:"parent"`
	PathString string `json:"pathstring"`
}

// Part is a row-like record from the remote inventory. It is decoded as a
// generic map rather than a fixed struct because SELECT * must surface
// whatever fields a decoded part carries, while 'pk' needs special
// numeric-coercion treatment that a struct tag can't express uniformly.
type Part map[string]any

// Parameter is one entry from /api/part/parameter/?part=<pk>.
type Parameter map[string]any
