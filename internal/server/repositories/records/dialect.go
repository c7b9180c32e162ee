package records

import (
	"fmt"
	"strconv"
)

// dialect captures the few places where Postgres JSONB and SQLite JSON1
// disagree.
type dialect struct {
	name string
	// placeholder returns the n-th (1-based) bind marker.
	placeholder func(n int) string
	// field extracts a payload field as a comparable scalar.
	field func(ph string) string
	// jsonParam wraps a bind marker carrying a JSON document.
	jsonParam func(ph string) string
	// merge returns the payload with the JSON document at ph merged in.
	merge func(ph string) string
	// filterArg converts a Go filter value into what field() compares to.
	filterArg func(v any) any
	// uniqueViolation reports whether err is a primary key conflict.
	uniqueViolation func(err error) bool
}

var postgresDialect = dialect{
	name:            "postgres",
	placeholder:     func(n int) string { return "$" + strconv.Itoa(n) },
	field:           func(ph string) string { return "data ->> " + ph + "::text" },
	jsonParam:       func(ph string) string { return ph + "::jsonb" },
	merge:           func(ph string) string { return "data || " + ph + "::jsonb" },
	filterArg:       textArg,
	uniqueViolation: isPgUniqueViolation,
}

var sqliteDialect = dialect{
	name:            "sqlite",
	placeholder:     func(int) string { return "?" },
	field:           func(ph string) string { return "json_extract(data, '$.' || " + ph + ")" },
	jsonParam:       func(ph string) string { return "json(" + ph + ")" },
	merge:           func(ph string) string { return "json_patch(data, " + ph + ")" },
	filterArg:       sqliteArg,
	uniqueViolation: isSQLiteUniqueViolation,
}

// textArg renders a filter value the way ->> renders JSON scalars.
func textArg(v any) any {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// sqliteArg maps booleans to the integers json_extract yields for them.
func sqliteArg(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}
