package models

import "time"

// Transaction is one normalized sales event
type Transaction struct {
	ID                 string     `db:"transaction_id" json:"transactionId"`
	Date               *time.Time `db:"date" json:"date"`
	DateRaw            string     `db:"date_raw" json:"dateRaw,omitempty"`
	CustomerID         string     `db:"customer_id" json:"customerId"`
	CustomerName       string     `db:"customer_name" json:"customerName"`
	PhoneNumber        string     `db:"phone_number" json:"phoneNumber"`
	Gender             string     `db:"gender" json:"gender"`
	Age                *int       `db:"age" json:"age"`
	CustomerRegion     string     `db:"customer_region" json:"customerRegion"`
	CustomerType       string     `db:"customer_type" json:"customerType"`
	ProductID          string     `db:"product_id" json:"productId"`
	ProductName        string     `db:"product_name" json:"productName"`
	Brand              string     `db:"brand" json:"brand"`
	ProductCategory    string     `db:"product_category" json:"productCategory"`
	Tags               string     `db:"tags" json:"tags"`
	Quantity           *int       `db:"quantity" json:"quantity"`
	PricePerUnit       *float64   `db:"price_per_unit" json:"pricePerUnit"`
	DiscountPercentage *float64   `db:"discount_percentage" json:"discountPercentage"`
	TotalAmount        *float64   `db:"total_amount" json:"totalAmount"`
	FinalAmount        *float64   `db:"final_amount" json:"finalAmount"`
	PaymentMethod      string     `db:"payment_method" json:"paymentMethod"`
	OrderStatus        string     `db:"order_status" json:"orderStatus"`
	DeliveryType       string     `db:"delivery_type" json:"deliveryType"`
	StoreID            string     `db:"store_id" json:"storeId"`
	StoreLocation      string     `db:"store_location" json:"storeLocation"`
	SalespersonID      string     `db:"salesperson_id" json:"salespersonId"`
	EmployeeName       string     `db:"employee_name" json:"employeeName"`
}

// Clone returns a copy that shares no pointers with t
func (t Transaction) Clone() Transaction {
	out := t
	out.Date = clonePtr(t.Date)
	out.Age = clonePtr(t.Age)
	out.Quantity = clonePtr(t.Quantity)
	out.PricePerUnit = clonePtr(t.PricePerUnit)
	out.DiscountPercentage = clonePtr(t.DiscountPercentage)
	out.TotalAmount = clonePtr(t.TotalAmount)
	out.FinalAmount = clonePtr(t.FinalAmount)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// PageResult is one page of a query result
type PageResult struct {
	Items      []Transaction `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// Clone returns a copy whose Items can be mutated without affecting r
func (r *PageResult) Clone() *PageResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = cloneItems(r.Items)
	return &out
}

// ExportResult is the full ordered result of a query.
// Limit is zero when no export cap applies.
type ExportResult struct {
	Items     []Transaction `json:"items"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
	Limit     int           `json:"limit"`
}

// Clone returns a copy whose Items can be mutated without affecting r
func (r *ExportResult) Clone() *ExportResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = cloneItems(r.Items)
	return &out
}

func cloneItems(items []Transaction) []Transaction {
	out := make([]Transaction, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// IntRange is an inclusive numeric range, nil bounds when the dataset is empty
type IntRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// DateRange is an inclusive calendar date range
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Metadata lists the filter options present in the dataset
type Metadata struct {
	Regions           []string  `json:"regions"`
	Genders           []string  `json:"genders"`
	ProductCategories []string  `json:"productCategories"`
	Tags              []string  `json:"tags"`
	PaymentMethods    []string  `json:"paymentMethods"`
	AgeRange          IntRange  `json:"ageRange"`
	DateRange         DateRange `json:"dateRange"`
}

// Clone deep-copies the option lists
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Regions = append([]string(nil), m.Regions...)
	out.Genders = append([]string(nil), m.Genders...)
	out.ProductCategories = append([]string(nil), m.ProductCategories...)
	out.Tags = append([]string(nil), m.Tags...)
	out.PaymentMethods = append([]string(nil), m.PaymentMethods...)
	return &out
}
