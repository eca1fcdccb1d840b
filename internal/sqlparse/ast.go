package sqlparse

// Literal is a WHERE-clause comparison value: either an integer or a
// string literal.
type Literal struct {
	IsString bool
	Str      string
	Int      int64
}

// Query is the parsed form of the tiny grammar this driver accepts. Star is
// always true: ColList's named-column branch is never reachable (see
// parser.go's ParseQuery doc comment), so there is no column-list field to
// carry.
type Query struct {
	Star bool // SELECT * ...

	Table string // FROM identifier, may contain '/'

	HasWhere    bool
	WhereColumn string
	WhereValue  Literal
}
