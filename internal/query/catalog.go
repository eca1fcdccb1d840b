// Package query implements C9 (the SQL-to-HTTP planner/executor), C10 (the
// result-set cursor) and C11 (the SQLTables/SQLColumns metadata queries).
//
// What: Resolves a parsed sqlparse.Query to HTTP calls against
// internal/inventory, decodes the response into rows, and exposes the
// result as a forward-only cursor with column metadata.
// How: plan.go owns the fetch strategy (list vs single-row-plus-metadata),
// row.go owns pk coercion and cell stringification, cursor.go is the
// forward-only reader, metadata.go builds the SQLTables/SQLColumns result
// shapes.
// Why: This is the largest single component of the driver, so it is split
// across files by concern rather than kept as one large executor.
package query

// SQL type codes as defined by the ODBC headers (mirrored here so this
// package stays cgo-free and independently testable; odbc/odbc.go maps
// these 1:1 onto the C.SQL_* constants).
const (
	SQLVarchar = 12
	SQLInteger = 4

	SQLNoNulls        = 0
	SQLNullable       = 1
	SQLNullableUnknow = 2
)

// ColumnDesc is one column's metadata, as SQLDescribeCol/SQLColumns report
// it.
type ColumnDesc struct {
	Name          string
	SQLType       int16
	Size          uint64
	DecimalDigits int16
	Nullable      int16
}

// MetadataColumns is the fixed per-table column catalog SQLColumns reports:
// every table exposes exactly two columns, pk (INTEGER) and IPN (VARCHAR).
func MetadataColumns() []ColumnDesc {
	return []ColumnDesc{
		{Name: "pk", SQLType: SQLInteger, Size: 20, Nullable: SQLNoNulls},
		{Name: "IPN", SQLType: SQLVarchar, Size: 255, Nullable: SQLNullable},
	}
}
