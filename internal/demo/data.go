package demo

import "grocerystore/internal/models"

func measure(value float64, unit string) *models.Measure {
	return &models.Measure{Value: value, Unit: unit}
}

func count(n int) *int {
	return &n
}

func cad(value float64) models.Price {
	return models.Price{Value: value, Currency: "CAD"}
}

// Groceries is the demo catalog loaded into an empty store.
func Groceries() []models.Grocery {
	return []models.Grocery{
		{Name: "Milk", Brand: "Dairyland", Category: "Dairy and Eggs", Price: cad(2.99), Volume: measure(1000, "ml"), Stock: 20},
		{Name: "Eggs", Brand: "Kirkland", Category: "Dairy and Eggs", Price: cad(3.99), Quantity: count(12), Stock: 11},
		{Name: "Bread", Brand: "Country Harvest", Category: "Bread and Bakery", Price: cad(2.49), Mass: measure(600, "g"), Stock: 12},
		{Name: "Bagel", Brand: "Dempster's", Category: "Bread and Bakery", Price: cad(2.19), Quantity: count(6), Stock: 3},
		{Name: "Chicken Breast", Brand: "Maple Lodge Farms", Category: "Meat", Price: cad(13.99), Mass: measure(1000, "g"), Stock: 6},
		{Name: "Plant-Based Burgers", Brand: "Beyond Meat", Category: "Meat", Price: cad(8.99), Mass: measure(226, "g"), Stock: 4},
		{Name: "Lettuce", Brand: "Canada Produce", Category: "Produce", Price: cad(1.59), Mass: measure(300, "g"), Stock: 5},
		{Name: "Carrots", Brand: "Canada Produce", Category: "Produce", Price: cad(1.97), Mass: measure(100, "g"), Stock: 7},
		{Name: "Strawberries", Brand: "Driscolls", Category: "Produce", Price: cad(3.99), Mass: measure(454, "g"), Stock: 6},
		{Name: "Baked Beans", Brand: "Heinz Beanz", Category: "Canned Goods", Price: cad(1.79), Mass: measure(441, "g"), Stock: 10},
		{Name: "Tomato Soup", Brand: "Campbell's", Category: "Canned Goods", Price: cad(2.3), Mass: measure(335, "g"), Stock: 10},
	}
}
