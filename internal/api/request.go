package api

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"sales-service/internal/query"

	"github.com/go-playground/validator/v10"
)

// SalesQueryRequest carries the query string of the sales endpoints. Every
// field is optional and kept as text; an empty value means absent.
type SalesQueryRequest struct {
	Search            string `form:"search" validate:"max=200"`
	Regions           string `form:"regions" validate:"max=2000"`
	Genders           string `form:"genders" validate:"max=2000"`
	ProductCategories string `form:"productCategories" validate:"max=2000"`
	Tags              string `form:"tags" validate:"max=2000"`
	PaymentMethods    string `form:"paymentMethods" validate:"max=2000"`
	AgeMin            string `form:"ageMin" validate:"omitempty,nonnegative"`
	AgeMax            string `form:"ageMax" validate:"omitempty,nonnegative"`
	DateFrom          string `form:"dateFrom" validate:"omitempty,isodate"`
	DateTo            string `form:"dateTo" validate:"omitempty,isodate"`
	SortBy            string `form:"sortBy" validate:"omitempty,oneof=date quantity finalAmount customerName"`
	SortOrder         string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page              string `form:"page" validate:"omitempty,intmin=1"`
	PageSize          string `form:"pageSize" validate:"omitempty,intmin=1,intmax=100"`
}

// Raw converts the request into pipeline input
func (r SalesQueryRequest) Raw() query.RawQuery {
	return query.RawQuery{
		Search:            r.Search,
		Regions:           r.Regions,
		Genders:           r.Genders,
		ProductCategories: r.ProductCategories,
		Tags:              r.Tags,
		PaymentMethods:    r.PaymentMethods,
		AgeMin:            r.AgeMin,
		AgeMax:            r.AgeMax,
		DateFrom:          r.DateFrom,
		DateTo:            r.DateTo,
		SortBy:            r.SortBy,
		SortOrder:         r.SortOrder,
		Page:              r.Page,
		PageSize:          r.PageSize,
	}
}

// FieldError is one rejected query parameter
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// newValidator builds a validator that reports errors by query parameter
// name and knows the custom rules used by SalesQueryRequest
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := query.ParseDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("intmin", func(fl validator.FieldLevel) bool {
		n, ok := parseIntParam(fl)
		return ok && n >= paramInt(fl.Param())
	})
	_ = v.RegisterValidation("intmax", func(fl validator.FieldLevel) bool {
		n, ok := parseIntParam(fl)
		return ok && n <= paramInt(fl.Param())
	})

	v.RegisterStructValidation(validateRanges, SalesQueryRequest{})
	return v
}

// validateRanges checks the bounds that span two parameters. Bounds that
// do not parse were already reported by their field rules.
func validateRanges(sl validator.StructLevel) {
	req := sl.Current().Interface().(SalesQueryRequest)

	if lo, okLo := parseFloat(req.AgeMin); okLo {
		if hi, okHi := parseFloat(req.AgeMax); okHi && lo > hi {
			sl.ReportError(req.AgeMin, "ageRange", "AgeMin", "agerange", "")
		}
	}

	if from, okFrom := query.ParseDate(req.DateFrom); okFrom {
		if to, okTo := query.ParseDate(req.DateTo); okTo && query.CalendarDate(from).After(query.CalendarDate(to)) {
			sl.ReportError(req.DateFrom, "dateRange", "DateFrom", "daterange", "")
		}
	}
}

// fieldErrors translates validator output into the response shape
func fieldErrors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Param: "query", Msg: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Param: fe.Field(), Msg: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "nonnegative":
		return fmt.Sprintf("%s must be a non-negative number", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be an ISO 8601 date", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "intmin", "intmax":
		if fe.Field() == "pageSize" {
			return fmt.Sprintf("pageSize must be an integer between 1 and %d", query.MaxPageSize)
		}
		return fmt.Sprintf("%s must be an integer >= 1", fe.Field())
	case "agerange":
		return "ageMin must be less than or equal to ageMax"
	case "daterange":
		return "dateFrom must be on or before dateTo"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func parseIntParam(fl validator.FieldLevel) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return n, err == nil
}

func paramInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFloat(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
