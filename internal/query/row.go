package query

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kom2/kom2/internal/diag"
	"github.com/kom2/kom2/internal/inventory"
)

// coercePK converts a decoded pk field to int64, distinguishing a
// non-numeric JSON value from a numeric-but-non-integer one. Decoding with
// json.Decoder.UseNumber (internal/inventory) means a bare JSON number comes
// back as json.Number and a quoted JSON string comes back as string, so the
// two error cases fall out of a type switch rather than a parse attempt.
func coercePK(v any) (int64, *diag.Record) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, diag.New("HY000", 0, "Unable to fetch parts: was unable to convert 'pk' to an int64")
		}
		return n, nil
	default:
		return 0, diag.New("HY000", 0, "Unable to fetch parts: 'pk' is not a number")
	}
}

// valueToCell renders a decoded JSON value as the string a bound SQL_C_CHAR
// column receives, handling json.Number and the nested map/array shapes the
// inventory API's metadata/parameters fields can carry.
func valueToCell(v any) (s string, isNull bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case json.Number:
		return t.String(), false
	case string:
		return t, false
	case bool:
		if t {
			return "true", false
		}
		return "false", false
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), false
	default:
		return fmt.Sprint(t), false
	}
}

// rowSet is the row-major intermediate built from decoded inventory
// rows before it is handed to NewCursor.
type rowSet struct {
	columns []string
	cells   [][]string
	nulls   [][]bool
}

// buildRowSet coerces pk on every row, failing the whole fetch on the
// first bad one, then projects
// "pk", "IPN" (when present), and every other field encountered (nested
// objects and arrays included, rendered as JSON), sorted for determinism.
func buildRowSet(rows []inventory.Part) (*rowSet, *diag.Record) {
	cols := projectionColumns(rows)

	rs := &rowSet{columns: cols}
	for _, row := range rows {
		pkRaw, ok := row["pk"]
		if !ok {
			return nil, diag.New("HY000", 0, "Unable to fetch parts: 'pk' is not a number")
		}
		pk, errRec := coercePK(pkRaw)
		if errRec != nil {
			return nil, errRec
		}

		cellRow := make([]string, len(cols))
		nullRow := make([]bool, len(cols))
		for i, col := range cols {
			if col == "pk" {
				cellRow[i] = fmt.Sprint(pk)
				continue
			}
			val, present := row[col]
			if !present {
				nullRow[i] = true
				continue
			}
			cellRow[i], nullRow[i] = valueToCell(val)
		}
		rs.cells = append(rs.cells, cellRow)
		rs.nulls = append(rs.nulls, nullRow)
	}
	return rs, nil
}

func projectionColumns(rows []inventory.Part) []string {
	seen := map[string]bool{"pk": true}
	cols := []string{"pk"}

	hasIPN := false
	for _, row := range rows {
		if _, ok := row["IPN"]; ok {
			hasIPN = true
			break
		}
	}
	if hasIPN {
		cols = append(cols, "IPN")
		seen["IPN"] = true
	}

	rest := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				rest[k] = true
			}
		}
	}
	var sorted []string
	for k := range rest {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	return append(cols, sorted...)
}
