package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sales-service/internal/models"
)

// Column is one entry of the export manifest
type Column struct {
	Header string
	Value  func(*models.Transaction) string
}

// Columns is the fixed export layout. The header row never depends on the
// rows being exported, so an empty result still yields a valid document.
var Columns = []Column{
	{"Transaction ID", func(t *models.Transaction) string { return t.ID }},
	{"Date", func(t *models.Transaction) string {
		if t.Date != nil {
			return t.Date.Format("2006-01-02")
		}
		return t.DateRaw
	}},
	{"Customer ID", func(t *models.Transaction) string { return t.CustomerID }},
	{"Customer Name", func(t *models.Transaction) string { return t.CustomerName }},
	{"Phone Number", func(t *models.Transaction) string { return t.PhoneNumber }},
	{"Gender", func(t *models.Transaction) string { return t.Gender }},
	{"Age", func(t *models.Transaction) string { return formatInt(t.Age) }},
	{"Customer Region", func(t *models.Transaction) string { return t.CustomerRegion }},
	{"Customer Type", func(t *models.Transaction) string { return t.CustomerType }},
	{"Product ID", func(t *models.Transaction) string { return t.ProductID }},
	{"Product Name", func(t *models.Transaction) string { return t.ProductName }},
	{"Brand", func(t *models.Transaction) string { return t.Brand }},
	{"Product Category", func(t *models.Transaction) string { return t.ProductCategory }},
	{"Tags", func(t *models.Transaction) string { return t.Tags }},
	{"Quantity", func(t *models.Transaction) string { return formatInt(t.Quantity) }},
	{"Price per Unit", func(t *models.Transaction) string { return formatFloat(t.PricePerUnit) }},
	{"Discount Percentage", func(t *models.Transaction) string { return formatFloat(t.DiscountPercentage) }},
	{"Total Amount", func(t *models.Transaction) string { return formatFloat(t.TotalAmount) }},
	{"Final Amount", func(t *models.Transaction) string { return formatFloat(t.FinalAmount) }},
	{"Payment Method", func(t *models.Transaction) string { return t.PaymentMethod }},
	{"Order Status", func(t *models.Transaction) string { return t.OrderStatus }},
	{"Delivery Type", func(t *models.Transaction) string { return t.DeliveryType }},
	{"Store ID", func(t *models.Transaction) string { return t.StoreID }},
	{"Store Location", func(t *models.Transaction) string { return t.StoreLocation }},
	{"Salesperson ID", func(t *models.Transaction) string { return t.SalespersonID }},
	{"Employee Name", func(t *models.Transaction) string { return t.EmployeeName }},
}

// Headers returns the header row
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// WriteCSV writes the header row and one line per transaction, quoting
// fields that contain a comma, quote or newline.
func WriteCSV(w io.Writer, rows []models.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(Columns))
	for i := range rows {
		for j, c := range Columns {
			record[j] = c.Value(&rows[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
