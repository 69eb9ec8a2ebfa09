package catalog

import (
	"github.com/mbousquet-onestock/exchange/internal/models"
	"github.com/shopspring/decimal"
)

// Fixed option lists shown in the configuration step. These come with
// the catalog feed; there is no per-article variant lookup in the mock
// data set.
var (
	Reasons = []string{
		"Too small",
		"Too big",
		"Damaged item",
		"Color not as expected",
		"Style doesn't suit me",
		"Changed my mind",
	}

	Sizes  = []string{"XS", "S", "M", "L", "XL"}
	Colors = []string{"Black", "Grey", "White", "Navy", "Red"}

	Methods = []models.ReturnMethod{
		{
			ID:          "in-store",
			Label:       "In store return",
			Description: "Drop off at any of our retail locations.",
		},
		{
			ID:          "ups",
			Label:       "UPS: Standard delivery",
			Description: "Drop off at a UPS Access Point.",
		},
	}
)

// DefaultArticles is the mock purchase history used to seed an empty
// catalog store.
func DefaultArticles() []models.Article {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []models.Article{
		{
			ID:       "1006255003062",
			Name:     "T-shirt short sleeves",
			Price:    price("9.99"),
			Currency: "£",
			Color:    "Black",
			Size:     "M",
			Sku:      "1006255003062",
			ImageURL: "15707351_BK.jpg",
			Status:   "Fulfilled",
			Quantity: 1,
		},
		{
			ID:       "1006255002072",
			Name:     "T-shirt short sleeves",
			Price:    price("9.99"),
			Currency: "£",
			Color:    "Grey",
			Size:     "S",
			Sku:      "1006255002072",
			ImageURL: "15707351_GY.jpg",
			Status:   "Fulfilled",
			Quantity: 1,
		},
		{
			ID:       "1006255001082",
			Name:     "T-shirt short sleeves",
			Price:    price("9.99"),
			Currency: "£",
			Color:    "White",
			Size:     "M",
			Sku:      "1006255001082",
			ImageURL: "15707351_WH.jpg",
			Status:   "Fulfilled",
			Quantity: 1,
		},
		{
			ID:       "1006102405490",
			Name:     "Round-neck t-shirt",
			Price:    price("12.99"),
			Currency: "£",
			Color:    "Red",
			Size:     "S",
			Sku:      "1006102405490",
			ImageURL: "15719762_RD.jpg",
			Status:   "Fulfilled",
			Quantity: 1,
		},
	}
}

// DefaultCustomer is the placeholder contact record a fresh wizard
// session starts from. In a real deployment this would come from the
// order lookup.
func DefaultCustomer() models.CustomerDetails {
	return models.CustomerDetails{
		Email:     "john.doe@onestock-retail.com",
		FirstName: "John",
		LastName:  "Doe",
		Address:   "123 E-Commerce Street",
		City:      "Manchester",
		ZipCode:   "M1 4BT",
		Country:   "United Kingdom",
	}
}
