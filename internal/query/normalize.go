package query

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortKey names a supported sort field
type SortKey string

// Supported sort keys
const (
	SortNone           SortKey = ""
	SortByDate         SortKey = "date"
	SortByQuantity     SortKey = "quantity"
	SortByFinalAmount  SortKey = "finalAmount"
	SortByCustomerName SortKey = "customerName"
)

// SortKeys lists every accepted sortBy value
var SortKeys = []SortKey{SortByDate, SortByQuantity, SortByFinalAmount, SortByCustomerName}

// SortOrder is the sort direction
type SortOrder string

// Sort directions
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Pagination defaults and bounds
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const dateLayout = "2006-01-02"

// RawQuery holds the request parameters as received, all optional
type RawQuery struct {
	Search            string
	Regions           string
	Genders           string
	ProductCategories string
	Tags              string
	PaymentMethods    string
	AgeMin            string
	AgeMax            string
	DateFrom          string
	DateTo            string
	SortBy            string
	SortOrder         string
	Page              string
	PageSize          string
}

// Query is the canonical form of a RawQuery. It is both the pipeline input
// and the source of the cache signature.
type Query struct {
	Search            string
	Regions           []string
	Genders           []string
	ProductCategories []string
	Tags              []string
	PaymentMethods    []string
	AgeMin            *float64
	AgeMax            *float64
	DateFrom          *time.Time
	DateTo            *time.Time
	SortBy            SortKey
	SortOrder         SortOrder
	Page              int
	PageSize          int
}

// Normalize canonicalizes raw parameters. List values are trimmed,
// lower-cased, de-duplicated and sorted so that element order never
// changes the signature. Normalize(Normalize(r).Raw()) == Normalize(r).
func Normalize(raw RawQuery) Query {
	q := Query{
		Search:            strings.Join(strings.Fields(strings.ToLower(raw.Search)), " "),
		Regions:           splitList(raw.Regions),
		Genders:           splitList(raw.Genders),
		ProductCategories: splitList(raw.ProductCategories),
		Tags:              splitList(raw.Tags),
		PaymentMethods:    splitList(raw.PaymentMethods),
		AgeMin:            parseAge(raw.AgeMin),
		AgeMax:            parseAge(raw.AgeMax),
		DateFrom:          parseDateParam(raw.DateFrom),
		DateTo:            parseDateParam(raw.DateTo),
		SortBy:            parseSortKey(raw.SortBy),
		SortOrder:         Asc,
		Page:              parsePositiveInt(raw.Page, DefaultPage),
		PageSize:          ClampPageSize(parsePositiveInt(raw.PageSize, DefaultPageSize)),
	}
	if strings.EqualFold(strings.TrimSpace(raw.SortOrder), string(Desc)) {
		q.SortOrder = Desc
	}
	return q
}

// Raw renders q back into request parameters
func (q Query) Raw() RawQuery {
	return RawQuery{
		Search:            q.Search,
		Regions:           strings.Join(q.Regions, ","),
		Genders:           strings.Join(q.Genders, ","),
		ProductCategories: strings.Join(q.ProductCategories, ","),
		Tags:              strings.Join(q.Tags, ","),
		PaymentMethods:    strings.Join(q.PaymentMethods, ","),
		AgeMin:            formatFloat(q.AgeMin),
		AgeMax:            formatFloat(q.AgeMax),
		DateFrom:          formatDate(q.DateFrom),
		DateTo:            formatDate(q.DateTo),
		SortBy:            string(q.SortBy),
		SortOrder:         string(q.SortOrder),
		Page:              strconv.Itoa(q.Page),
		PageSize:          strconv.Itoa(q.PageSize),
	}
}

type signature struct {
	Search            string    `json:"s"`
	Regions           []string  `json:"r"`
	Genders           []string  `json:"g"`
	ProductCategories []string  `json:"c"`
	Tags              []string  `json:"t"`
	PaymentMethods    []string  `json:"pm"`
	AgeMin            *float64  `json:"amin"`
	AgeMax            *float64  `json:"amax"`
	DateFrom          string    `json:"df"`
	DateTo            string    `json:"dt"`
	SortBy            SortKey   `json:"sb"`
	SortOrder         SortOrder `json:"so"`
	Page              int       `json:"p,omitempty"`
	PageSize          int       `json:"ps,omitempty"`
}

func (q Query) signature(withPage bool) string {
	sig := signature{
		Search:            q.Search,
		Regions:           q.Regions,
		Genders:           q.Genders,
		ProductCategories: q.ProductCategories,
		Tags:              q.Tags,
		PaymentMethods:    q.PaymentMethods,
		AgeMin:            q.AgeMin,
		AgeMax:            q.AgeMax,
		DateFrom:          formatDate(q.DateFrom),
		DateTo:            formatDate(q.DateTo),
		SortBy:            q.SortBy,
		SortOrder:         q.SortOrder,
	}
	if withPage {
		sig.Page = q.Page
		sig.PageSize = q.PageSize
	}
	// every field is a string, slice of strings, number or pointer to number
	b, _ := json.Marshal(sig)
	return string(b)
}

// Signature is the cache key of the paginated result
func (q Query) Signature() string {
	return "page:" + q.signature(true)
}

// ExportSignature is the cache key of the unpaginated result; it ignores
// page and pageSize.
func (q Query) ExportSignature() string {
	return "export:" + q.signature(false)
}

// ClampPageSize bounds n to [1, MaxPageSize]
func ClampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// ParseDate parses an ISO-8601 date or timestamp into a calendar date at
// UTC midnight. Time of day and offset are discarded.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{dateLayout, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDate(t), true
		}
	}
	return time.Time{}, false
}

// CalendarDate strips the time of day, keeping the date as written
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseSortKey(s string) SortKey {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortNone
}

func splitList(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(s, ",") {
		v := strings.ToLower(strings.TrimSpace(part))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func parseAge(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v < 0 {
		v = 0
	}
	return &v
}

func parseDateParam(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(math.Floor(v))
	if n < 1 {
		return 1
	}
	return n
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
