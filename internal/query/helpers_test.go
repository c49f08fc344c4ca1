package query

import (
	"time"

	"sales-service/internal/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ids(rows []models.Transaction) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func fixtureRows() []models.Transaction {
	return []models.Transaction{
		{ID: "1", CustomerName: "Neha Sharma", PhoneNumber: "+91 98765 43210", Gender: "Female", Age: intPtr(34),
			CustomerRegion: "North", ProductCategory: "Beauty", Tags: "organic, skincare", PaymentMethod: "UPI",
			Quantity: intPtr(2), FinalAmount: floatPtr(1200), Date: datePtr("2023-03-10")},
		{ID: "2", CustomerName: "Rahul Verma", PhoneNumber: "9123456780", Gender: "Male", Age: intPtr(25),
			CustomerRegion: "South", ProductCategory: "Electronics", Tags: "gadgets,wireless", PaymentMethod: "Credit Card",
			Quantity: intPtr(1), FinalAmount: floatPtr(5400), Date: datePtr("2023-01-05")},
		{ID: "3", CustomerName: "Anita Rao", PhoneNumber: "9988776655", Gender: "Female", Age: intPtr(41),
			CustomerRegion: "north", ProductCategory: "Clothing", Tags: "Casual,Cotton", PaymentMethod: "Cash",
			Quantity: intPtr(4), FinalAmount: floatPtr(800), Date: datePtr("2023-07-22")},
		{ID: "4", CustomerName: "Vikram Singh", PhoneNumber: "", Gender: "Male", Age: nil,
			CustomerRegion: "East", ProductCategory: "Electronics", Tags: "smart", PaymentMethod: "Wallet",
			Quantity: nil, FinalAmount: nil, Date: nil},
		{ID: "5", CustomerName: "Priya Nair", PhoneNumber: "9000011111", Gender: "Female", Age: intPtr(29),
			CustomerRegion: "West", ProductCategory: "Beauty", Tags: "makeup", PaymentMethod: "UPI",
			Quantity: intPtr(3), FinalAmount: floatPtr(2300), Date: datePtr("2023-03-10")},
	}
}
