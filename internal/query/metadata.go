package query

import (
	"strconv"

	"github.com/kom2/kom2/internal/inventory"
)

// tablesColumns is the fixed column shape of a SQLTables result set, the
// standard ODBC catalog columns (C11).
func tablesColumns() []ColumnDesc {
	return []ColumnDesc{
		{Name: "TABLE_CAT", SQLType: SQLVarchar, Size: 128, Nullable: SQLNullable},
		{Name: "TABLE_SCHEM", SQLType: SQLVarchar, Size: 128, Nullable: SQLNullable},
		{Name: "TABLE_NAME", SQLType: SQLVarchar, Size: 128, Nullable: SQLNoNulls},
		{Name: "TABLE_TYPE", SQLType: SQLVarchar, Size: 32, Nullable: SQLNoNulls},
		{Name: "REMARKS", SQLType: SQLVarchar, Size: 254, Nullable: SQLNullable},
	}
}

// TablesCursor builds the SQLTables result set: one row per category,
// TABLE_NAME is the category pathstring, TABLE_TYPE is always "TABLE".
// When tableFilter is non-empty, only the matching category (if any) is
// returned, matching SQLTables' catalog-filter semantics.
func TablesCursor(categories *inventory.CategoryIndex, tableFilter string) *Cursor {
	cols := tablesColumns()
	var cells [][]string
	var nulls [][]bool

	for _, c := range categories.All() {
		if tableFilter != "" && c.PathString != tableFilter {
			continue
		}
		cells = append(cells, []string{"", "", c.PathString, "TABLE", ""})
		nulls = append(nulls, []bool{true, true, false, false, true})
	}
	return NewCursor(cols, cells, nulls)
}

// columnsColumns is the fixed column shape of a SQLColumns result set
// (standard ODBC catalog columns).
func columnsColumns() []ColumnDesc {
	return []ColumnDesc{
		{Name: "TABLE_CAT", SQLType: SQLVarchar, Size: 128, Nullable: SQLNullable},
		{Name: "TABLE_SCHEM", SQLType: SQLVarchar, Size: 128, Nullable: SQLNullable},
		{Name: "TABLE_NAME", SQLType: SQLVarchar, Size: 128, Nullable: SQLNoNulls},
		{Name: "COLUMN_NAME", SQLType: SQLVarchar, Size: 128, Nullable: SQLNoNulls},
		{Name: "DATA_TYPE", SQLType: SQLInteger, Size: 5, Nullable: SQLNoNulls},
		{Name: "TYPE_NAME", SQLType: SQLVarchar, Size: 32, Nullable: SQLNoNulls},
		{Name: "COLUMN_SIZE", SQLType: SQLInteger, Size: 10, Nullable: SQLNullable},
		{Name: "BUFFER_LENGTH", SQLType: SQLInteger, Size: 10, Nullable: SQLNullable},
		{Name: "DECIMAL_DIGITS", SQLType: SQLInteger, Size: 5, Nullable: SQLNullable},
		{Name: "NUM_PREC_RADIX", SQLType: SQLInteger, Size: 5, Nullable: SQLNullable},
		{Name: "NULLABLE", SQLType: SQLInteger, Size: 5, Nullable: SQLNoNulls},
		{Name: "REMARKS", SQLType: SQLVarchar, Size: 254, Nullable: SQLNullable},
	}
}

// ColumnsCursor builds the SQLColumns result set for table: one row per
// entry in the fixed two-column catalog, regardless of what a SELECT *
// against that table would actually project. columnFilter, when
// non-empty, restricts the result to the matching column name.
func ColumnsCursor(table string, columnFilter string) *Cursor {
	cols := columnsColumns()
	var cells [][]string
	var nulls [][]bool

	for _, cd := range MetadataColumns() {
		if columnFilter != "" && cd.Name != columnFilter {
			continue
		}
		typeName := "VARCHAR"
		if cd.SQLType == SQLInteger {
			typeName = "INTEGER"
		}
		cells = append(cells, []string{
			"", "", table, cd.Name,
			strconv.Itoa(int(cd.SQLType)), typeName,
			strconv.Itoa(int(cd.Size)), strconv.Itoa(int(cd.Size)),
			"", "",
			strconv.Itoa(int(cd.Nullable)), "",
		})
		nulls = append(nulls, []bool{
			true, true, false, false,
			false, false,
			false, false,
			true, true,
			false, true,
		})
	}
	return NewCursor(cols, cells, nulls)
}
