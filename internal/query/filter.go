package query

import (
	"strings"
	"time"

	"sales-service/internal/models"
)

// Criteria are independent predicates combined with AND. An empty set or a
// nil bound disables its predicate.
type Criteria struct {
	Regions           []string
	Genders           []string
	ProductCategories []string
	Tags              []string
	PaymentMethods    []string
	AgeMin            *float64
	AgeMax            *float64
	DateFrom          *time.Time
	DateTo            *time.Time
}

// CriteriaFrom extracts the filter criteria of q
func CriteriaFrom(q Query) Criteria {
	return Criteria{
		Regions:           q.Regions,
		Genders:           q.Genders,
		ProductCategories: q.ProductCategories,
		Tags:              q.Tags,
		PaymentMethods:    q.PaymentMethods,
		AgeMin:            q.AgeMin,
		AgeMax:            q.AgeMax,
		DateFrom:          q.DateFrom,
		DateTo:            q.DateTo,
	}
}

type predicate func(*models.Transaction) bool

// Filter narrows rows by each active predicate in turn
func Filter(rows []models.Transaction, c Criteria) []models.Transaction {
	for _, keep := range c.predicates() {
		rows = narrow(rows, keep)
	}
	return rows
}

func (c Criteria) predicates() []predicate {
	var preds []predicate

	if set := lowerSet(c.Regions); set != nil {
		preds = append(preds, inSet(set, func(t *models.Transaction) string { return t.CustomerRegion }))
	}
	if set := lowerSet(c.Genders); set != nil {
		preds = append(preds, inSet(set, func(t *models.Transaction) string { return t.Gender }))
	}
	if set := lowerSet(c.ProductCategories); set != nil {
		preds = append(preds, inSet(set, func(t *models.Transaction) string { return t.ProductCategory }))
	}
	if set := lowerSet(c.PaymentMethods); set != nil {
		preds = append(preds, inSet(set, func(t *models.Transaction) string { return t.PaymentMethod }))
	}
	if set := lowerSet(c.Tags); set != nil {
		preds = append(preds, func(t *models.Transaction) bool {
			for _, tag := range SplitTags(t.Tags) {
				if _, ok := set[strings.ToLower(tag)]; ok {
					return true
				}
			}
			return false
		})
	}
	if c.AgeMin != nil || c.AgeMax != nil {
		preds = append(preds, func(t *models.Transaction) bool {
			if t.Age == nil {
				return false
			}
			age := float64(*t.Age)
			if c.AgeMin != nil && age < *c.AgeMin {
				return false
			}
			if c.AgeMax != nil && age > *c.AgeMax {
				return false
			}
			return true
		})
	}
	if c.DateFrom != nil || c.DateTo != nil {
		var from, to time.Time
		if c.DateFrom != nil {
			from = CalendarDate(*c.DateFrom)
		}
		if c.DateTo != nil {
			to = CalendarDate(*c.DateTo)
		}
		preds = append(preds, func(t *models.Transaction) bool {
			if t.Date == nil {
				return false
			}
			d := CalendarDate(*t.Date)
			if c.DateFrom != nil && d.Before(from) {
				return false
			}
			if c.DateTo != nil && d.After(to) {
				return false
			}
			return true
		})
	}
	return preds
}

// SplitTags splits a delimited tag list, trimming blanks
func SplitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func narrow(rows []models.Transaction, keep predicate) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows))
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

func inSet(set map[string]struct{}, field func(*models.Transaction) string) predicate {
	return func(t *models.Transaction) bool {
		_, ok := set[strings.ToLower(strings.TrimSpace(field(t)))]
		return ok
	}
}

func lowerSet(values []string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(values))
		}
		set[v] = struct{}{}
	}
	return set
}
