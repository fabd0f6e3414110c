// Package apifeatures translates the query string of the diary list endpoint
// into SQL filter, sort and pagination clauses.
//
// Reserved parameters (page, limit, sort, startDate, endDate) control
// pagination, ordering and the date range; every other parameter is a filter
// on a whitelisted entry field. Comparison operators embed in the key, e.g.
// stressLevel[gte]=3 or mood[in]=happy,excited. Parse is a pure function:
// the same input always yields the same clauses.
package apifeatures

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wellnessdiary/api/internal/common"
)

const (
	// DefaultPage is used when page is absent or not a positive integer.
	DefaultPage = 1
	// DefaultLimit is used when limit is absent or not a positive integer.
	DefaultLimit = 10
)

type fieldKind int

const (
	kindInt fieldKind = iota
	kindFloat
	kindBool
	kindString
	kindTime
)

type field struct {
	column string
	kind   fieldKind
}

// filterFields maps the wire name of each filterable entry field to its
// column and value type. A mood value outside the enumerated set is not an
// error here: it simply matches zero rows (validation is a write-time
// concern).
var filterFields = map[string]field{
	"caloriesIntake": {"calories_intake", kindInt},
	"energyLevel":    {"energy_level", kindInt},
	"vitaminsTaken":  {"vitamins_taken", kindBool},
	"mood":           {"mood", kindString},
	"exerciseTime":   {"exercise_time", kindInt},
	"sleepQuality":   {"sleep_quality", kindInt},
	"waterIntake":    {"water_intake", kindFloat},
	"walkTime":       {"walk_time", kindInt},
	"stressLevel":    {"stress_level", kindInt},
	"date":           {"entry_date", kindTime},
}

// sortFields is the whitelist for the sort parameter.
var sortFields = map[string]string{
	"date":           "entry_date",
	"caloriesIntake": "calories_intake",
	"energyLevel":    "energy_level",
	"vitaminsTaken":  "vitamins_taken",
	"mood":           "mood",
	"exerciseTime":   "exercise_time",
	"sleepQuality":   "sleep_quality",
	"waterIntake":    "water_intake",
	"walkTime":       "walk_time",
	"stressLevel":    "stress_level",
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
}

var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"in":  "IN",
}

type condition struct {
	column string
	op     string
	args   []any
}

// ListQuery is the translated form of a list request: filter conditions,
// an order-by list and a page window.
type ListQuery struct {
	conds []condition
	order []string
	Page  int
	Limit int
}

// Offset returns the number of rows to skip for the requested page.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Where renders the filter conditions as an AND-joined SQL fragment with
// positional placeholders numbered from start. It returns an empty string
// when no filters are present.
func (q *ListQuery) Where(start int) (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}

	var parts []string
	var args []any
	n := start
	for _, c := range q.conds {
		if c.op == "IN" {
			ph := make([]string, len(c.args))
			for i := range c.args {
				ph[i] = fmt.Sprintf("$%d", n)
				n++
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", c.column, strings.Join(ph, ",")))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s $%d", c.column, c.op, n))
			n++
		}
		args = append(args, c.args...)
	}
	return strings.Join(parts, " AND "), args
}

// OrderBy renders the order-by list, always ending in the id tiebreak.
func (q *ListQuery) OrderBy() string {
	return strings.Join(q.order, ", ")
}

// Parse translates raw query parameters into a ListQuery.
//
// Filter keys take the form "field" (equality) or "field[op]" with op one of
// gt, gte, lt, lte, in. Keys with an empty value are dropped; a key that is
// not a reserved parameter and not a whitelisted field is rejected, as is a
// filter key given more than once (a set of values is expressed with [in]).
// A value of "0" is a real filter: presence of the key decides, not
// truthiness.
func Parse(values url.Values) (*ListQuery, error) {
	q := &ListQuery{Page: DefaultPage, Limit: DefaultLimit}

	// Sorted key order keeps placeholder numbering deterministic.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch key {
		case "page":
			q.Page = positiveIntOr(values.Get(key), DefaultPage)
		case "limit":
			q.Limit = positiveIntOr(values.Get(key), DefaultLimit)
		case "sort":
			if err := q.parseSort(values[key]); err != nil {
				return nil, err
			}
		case "startDate", "endDate":
			// handled together below
		default:
			if len(values[key]) > 1 {
				return nil, fmt.Errorf("%w: filter %q given more than once", common.ErrorValidation, key)
			}
			if err := q.parseFilter(key, values.Get(key)); err != nil {
				return nil, err
			}
		}
	}

	if err := q.parseDateRange(values.Get("startDate"), values.Get("endDate")); err != nil {
		return nil, err
	}

	// Deterministic tiebreak so that paging never duplicates or drops rows.
	q.order = append(q.order, "id ASC")

	return q, nil
}

func (q *ListQuery) parseFilter(key, raw string) error {
	if raw == "" {
		return nil
	}

	name, op := key, "="
	if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
		name = key[:i]
		opName := key[i+1 : len(key)-1]
		sqlOp, ok := operators[opName]
		if !ok {
			return fmt.Errorf("%w: unknown operator %q", common.ErrorValidation, opName)
		}
		op = sqlOp
	}

	f, ok := filterFields[name]
	if !ok {
		return fmt.Errorf("%w: unknown filter field %q", common.ErrorValidation, name)
	}

	var args []any
	rawValues := []string{raw}
	if op == "IN" {
		rawValues = strings.Split(raw, ",")
	}
	for _, rv := range rawValues {
		v, err := parseValue(f.kind, strings.TrimSpace(rv))
		if err != nil {
			return fmt.Errorf("%w: invalid value %q for %q", common.ErrorValidation, rv, name)
		}
		args = append(args, v)
	}

	q.conds = append(q.conds, condition{column: f.column, op: op, args: args})
	return nil
}

func (q *ListQuery) parseSort(raw []string) error {
	for _, part := range raw {
		for _, fieldName := range strings.Split(part, ",") {
			fieldName = strings.TrimSpace(fieldName)
			if fieldName == "" {
				continue
			}
			dir := "ASC"
			if strings.HasPrefix(fieldName, "-") {
				dir = "DESC"
				fieldName = fieldName[1:]
			}
			column, ok := sortFields[fieldName]
			if !ok {
				return fmt.Errorf("%w: unknown sort field %q", common.ErrorValidation, fieldName)
			}
			q.order = append(q.order, column+" "+dir)
		}
	}
	return nil
}

// parseDateRange folds startDate/endDate into a single inclusive range on
// the entry date: 00:00:00.000 UTC of startDate through 23:59:59.999 UTC of
// endDate. The two reserved keys never become literal filter columns.
func (q *ListQuery) parseDateRange(startDate, endDate string) error {
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return fmt.Errorf("%w: invalid startDate %q", common.ErrorValidation, startDate)
		}
		q.conds = append(q.conds, condition{column: "entry_date", op: ">=", args: []any{t.UTC()}})
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return fmt.Errorf("%w: invalid endDate %q", common.ErrorValidation, endDate)
		}
		end := t.UTC().Add(24*time.Hour - time.Millisecond)
		q.conds = append(q.conds, condition{column: "entry_date", op: "<=", args: []any{end}})
	}
	return nil
}

func parseValue(kind fieldKind, raw string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindFloat:
		return strconv.ParseFloat(raw, 64)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindTime:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	default:
		return raw, nil
	}
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
