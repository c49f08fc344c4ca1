package ingest

import (
	"strings"
)

type field int

const (
	fieldTransactionID field = iota
	fieldDate
	fieldCustomerID
	fieldCustomerName
	fieldPhoneNumber
	fieldGender
	fieldAge
	fieldCustomerRegion
	fieldCustomerType
	fieldProductID
	fieldProductName
	fieldBrand
	fieldProductCategory
	fieldTags
	fieldQuantity
	fieldPricePerUnit
	fieldDiscountPercentage
	fieldTotalAmount
	fieldFinalAmount
	fieldPaymentMethod
	fieldOrderStatus
	fieldDeliveryType
	fieldStoreID
	fieldStoreLocation
	fieldSalespersonID
	fieldEmployeeName
	fieldCount
)

// Header aliases per canonical field, most specific first. Matching is on
// whole words, so "age" never claims "Discount Percentage".
var aliases = [fieldCount][]string{
	fieldTransactionID:      {"transaction id", "transactionid", "txn id", "id"},
	fieldDate:               {"date", "transaction date", "order date", "sale date", "sales date"},
	fieldCustomerID:         {"customer id", "customerid"},
	fieldCustomerName:       {"customer name", "customername", "customer"},
	fieldPhoneNumber:        {"phone number", "phone", "mobile number", "mobile"},
	fieldGender:             {"gender", "sex"},
	fieldAge:                {"age", "customer age"},
	fieldCustomerRegion:     {"customer region", "region"},
	fieldCustomerType:       {"customer type"},
	fieldProductID:          {"product id", "productid"},
	fieldProductName:        {"product name", "productname", "product"},
	fieldBrand:              {"brand"},
	fieldProductCategory:    {"product category", "productcategory", "category"},
	fieldTags:               {"tags", "tag"},
	fieldQuantity:           {"quantity", "qty"},
	fieldPricePerUnit:       {"price per unit", "unit price", "price"},
	fieldDiscountPercentage: {"discount percentage", "discount"},
	fieldTotalAmount:        {"total amount", "totalamount"},
	fieldFinalAmount:        {"final amount", "finalamount", "amount paid", "final"},
	fieldPaymentMethod:      {"payment method", "paymentmethod", "payment type", "payment"},
	fieldOrderStatus:        {"order status", "status"},
	fieldDeliveryType:       {"delivery type", "delivery"},
	fieldStoreID:            {"store id", "storeid"},
	fieldStoreLocation:      {"store location", "location"},
	fieldSalespersonID:      {"salesperson id", "salesperson"},
	fieldEmployeeName:       {"employee name", "employee"},
}

// columnMap holds the header index of each canonical field, -1 when absent
type columnMap [fieldCount]int

// NormalizeHeader strips a BOM and collapses whitespace
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(h), " ")
}

// mapColumns resolves headers in two passes: exact alias matches first, then
// whole-word containment for fields still unresolved. Each header is claimed
// at most once.
func mapColumns(header []string) columnMap {
	var cols columnMap
	for i := range cols {
		cols[i] = -1
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = headerKey(h)
	}
	claimed := make([]bool, len(header))

	for f := field(0); f < fieldCount; f++ {
		for _, alias := range aliases[f] {
			if idx := indexOf(keys, claimed, func(k string) bool { return k == alias }); idx >= 0 {
				cols[f] = idx
				claimed[idx] = true
				break
			}
		}
	}

	for f := field(0); f < fieldCount; f++ {
		if cols[f] >= 0 {
			continue
		}
		for _, alias := range aliases[f] {
			needle := " " + alias + " "
			if idx := indexOf(keys, claimed, func(k string) bool { return strings.Contains(" "+k+" ", needle) }); idx >= 0 {
				cols[f] = idx
				claimed[idx] = true
				break
			}
		}
	}
	return cols
}

func headerKey(h string) string {
	h = strings.ToLower(NormalizeHeader(h))
	h = strings.NewReplacer("_", " ", "-", " ", "(", " ", ")", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func indexOf(keys []string, claimed []bool, match func(string) bool) int {
	for i, k := range keys {
		if !claimed[i] && match(k) {
			return i
		}
	}
	return -1
}
