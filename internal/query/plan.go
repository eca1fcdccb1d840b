package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kom2/kom2/internal/diag"
	"github.com/kom2/kom2/internal/inventory"
	"github.com/kom2/kom2/internal/sqlparse"
)

// Execute plans and runs a parsed query against the inventory API (C9): it
// resolves the FROM table to a category via the index built at connect
// time (C7), picks the single-row-plus-metadata path for a "WHERE pk =
// <int>" predicate and the list-plus-client-side-filter path for every
// other shape, and returns a ready-to-fetch Cursor.
func Execute(ctx context.Context, client *inventory.Client, categories *inventory.CategoryIndex, q *sqlparse.Query) (*Cursor, *diag.Record) {
	categoryPK, ok := categories.Resolve(q.Table)
	if !ok {
		return nil, diag.New("HY000", 0, "Unable to fetch parts: Category does not exist")
	}

	if q.HasWhere && q.WhereColumn == "pk" && !q.WhereValue.IsString {
		return executeSingleRow(ctx, client, q.WhereValue.Int)
	}

	parts, err := client.FetchParts(ctx, &categoryPK)
	if err != nil {
		return nil, diag.New("HY000", 0, fmt.Sprintf("Unable to fetch parts: %v", err))
	}

	if q.HasWhere {
		parts, errRec := filterParts(parts, q.WhereColumn, q.WhereValue)
		if errRec != nil {
			return nil, errRec
		}
		return buildCursor(parts)
	}

	return buildCursor(parts)
}

func executeSingleRow(ctx context.Context, client *inventory.Client, pk int64) (*Cursor, *diag.Record) {
	part, err := client.FetchPart(ctx, pk)
	if err != nil {
		return nil, diag.New("HY000", 0, fmt.Sprintf("Unable to fetch parts: %v", err))
	}
	metadata, err := client.FetchPartMetadata(ctx, pk)
	if err != nil {
		return nil, diag.New("HY000", 0, fmt.Sprintf("Unable to fetch parts: %v", err))
	}
	params, err := client.FetchPartParameters(ctx, pk)
	if err != nil {
		return nil, diag.New("HY000", 0, fmt.Sprintf("Unable to fetch parts: %v", err))
	}

	merged := inventory.Part{}
	for k, v := range part {
		merged[k] = v
	}
	if metadata != nil {
		merged["metadata"] = metadata
	}
	if len(params) > 0 {
		paramsAny := make([]any, len(params))
		for i, p := range params {
			paramsAny[i] = map[string]any(p)
		}
		merged["parameters"] = paramsAny
	}

	return buildCursor([]inventory.Part{merged})
}

// filterParts applies a client-side WHERE <column> = <literal> predicate
// for any column other than pk. It rejects a column name absent from
// every decoded row with the "Invalid filter column" diagnostic.
func filterParts(parts []inventory.Part, column string, lit sqlparse.Literal) ([]inventory.Part, *diag.Record) {
	if !columnExists(parts, column) {
		return nil, diag.New("HY000", 0, "Unable to fetch parts: Invalid filter column")
	}

	var out []inventory.Part
	for _, p := range parts {
		if matchesLiteral(p[column], lit) {
			out = append(out, p)
		}
	}
	return out, nil
}

func columnExists(parts []inventory.Part, column string) bool {
	for _, p := range parts {
		if _, ok := p[column]; ok {
			return true
		}
	}
	return false
}

func matchesLiteral(cell any, lit sqlparse.Literal) bool {
	switch v := cell.(type) {
	case nil:
		return false
	case string:
		if lit.IsString {
			return v == lit.Str
		}
		return v == strconv.FormatInt(lit.Int, 10)
	case bool:
		return false
	default:
		s, _ := valueToCell(v)
		if lit.IsString {
			return s == lit.Str
		}
		return s == strconv.FormatInt(lit.Int, 10)
	}
}

func buildCursor(parts []inventory.Part) (*Cursor, *diag.Record) {
	rs, errRec := buildRowSet(parts)
	if errRec != nil {
		return nil, errRec
	}
	cols := make([]ColumnDesc, len(rs.columns))
	for i, name := range rs.columns {
		if name == "pk" {
			cols[i] = ColumnDesc{Name: name, SQLType: SQLInteger, Size: 20, Nullable: SQLNoNulls}
			continue
		}
		cols[i] = ColumnDesc{Name: name, SQLType: SQLVarchar, Size: 1024, Nullable: SQLNullable}
	}
	return NewCursor(cols, rs.cells, rs.nulls), nil
}
