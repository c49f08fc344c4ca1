package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sales-service/internal/models"
)

// LoadFile reads a sales CSV from disk
func LoadFile(path string) ([]models.Transaction, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadCSV(f)
}

// FileSource reads the dataset from a CSV file on every call
type FileSource struct {
	Path string
}

// Rows loads and parses the file
func (f FileSource) Rows(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(f.Path)
}

// LoadCSV reads a sales CSV whose first row is a header. Column names vary
// between exports, so each header is mapped onto a canonical field and every
// row comes out in the models.Transaction shape.
func LoadCSV(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := mapColumns(header)

	var rows []models.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, toTransaction(cols, record, len(rows)+1))
	}
	if rows == nil {
		rows = []models.Transaction{}
	}
	return rows, nil
}

func toTransaction(cols columnMap, record []string, seq int) models.Transaction {
	get := func(f field) string {
		idx := cols[f]
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	t := models.Transaction{
		ID:                 get(fieldTransactionID),
		DateRaw:            get(fieldDate),
		Date:               ParseDate(get(fieldDate)),
		CustomerID:         get(fieldCustomerID),
		CustomerName:       get(fieldCustomerName),
		PhoneNumber:        get(fieldPhoneNumber),
		Gender:             get(fieldGender),
		Age:                ParseInt(get(fieldAge)),
		CustomerRegion:     get(fieldCustomerRegion),
		CustomerType:       get(fieldCustomerType),
		ProductID:          get(fieldProductID),
		ProductName:        get(fieldProductName),
		Brand:              get(fieldBrand),
		ProductCategory:    get(fieldProductCategory),
		Tags:               get(fieldTags),
		Quantity:           ParseInt(get(fieldQuantity)),
		PricePerUnit:       ParseMoney(get(fieldPricePerUnit)),
		DiscountPercentage: ParseNumber(get(fieldDiscountPercentage)),
		TotalAmount:        ParseMoney(get(fieldTotalAmount)),
		FinalAmount:        ParseMoney(get(fieldFinalAmount)),
		PaymentMethod:      get(fieldPaymentMethod),
		OrderStatus:        get(fieldOrderStatus),
		DeliveryType:       get(fieldDeliveryType),
		StoreID:            get(fieldStoreID),
		StoreLocation:      get(fieldStoreLocation),
		SalespersonID:      get(fieldSalespersonID),
		EmployeeName:       get(fieldEmployeeName),
	}
	if t.ID == "" {
		t.ID = strconv.Itoa(seq)
	}
	if t.Age != nil && *t.Age < 0 {
		t.Age = nil
	}
	return t
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
