package models

// FallbackRows is the fixed alert set served when no dataset is reachable.
func FallbackRows() []AlertRow {
	return []AlertRow{
		{
			ID:           "1",
			ProductID:    "PROD-001",
			ProductName:  "Wireless Bluetooth Headphones",
			Category:     "Electronics",
			CurrentStock: NewQuantity(0),
			MinThreshold: NewQuantity(10),
			LastRestock:  "2024-01-15",
			Priority:     PriorityHigh,
			Status:       StatusOutOfStock,
			AlertDate:    "2024-01-20",
			Supplier:     "TechSupply Co.",
		},
		{
			ID:           "2",
			ProductID:    "PROD-002",
			ProductName:  "Organic Coffee Beans (1lb)",
			Category:     "Food & Beverage",
			CurrentStock: NewQuantity(2),
			MinThreshold: NewQuantity(15),
			LastRestock:  "2024-01-18",
			Priority:     PriorityHigh,
			Status:       StatusLowStock,
			AlertDate:    "2024-01-21",
			Supplier:     "Green Bean Co.",
		},
		{
			ID:           "3",
			ProductID:    "PROD-003",
			ProductName:  "Stainless Steel Water Bottle",
			Category:     "Home & Kitchen",
			CurrentStock: NewQuantity(0),
			MinThreshold: NewQuantity(25),
			LastRestock:  "2024-01-10",
			Priority:     PriorityMedium,
			Status:       StatusOutOfStock,
			AlertDate:    "2024-01-19",
			Supplier:     "Kitchen Essentials",
		},
		{
			ID:           "4",
			ProductID:    "PROD-004",
			ProductName:  "Yoga Mat (Premium)",
			Category:     "Sports & Fitness",
			CurrentStock: NewQuantity(1),
			MinThreshold: NewQuantity(8),
			LastRestock:  "2024-01-16",
			Priority:     PriorityMedium,
			Status:       StatusLowStock,
			AlertDate:    "2024-01-22",
			Supplier:     "Fitness Pro",
		},
		{
			ID:           "5",
			ProductID:    "PROD-005",
			ProductName:  "LED Desk Lamp",
			Category:     "Office Supplies",
			CurrentStock: NewQuantity(0),
			MinThreshold: NewQuantity(12),
			LastRestock:  "2024-01-12",
			Priority:     PriorityHigh,
			Status:       StatusOutOfStock,
			AlertDate:    "2024-01-18",
			Supplier:     "Office Solutions",
		},
		{
			ID:           "6",
			ProductID:    "PROD-006",
			ProductName:  "Cotton T-Shirt (Black)",
			Category:     "Clothing",
			CurrentStock: NewQuantity(3),
			MinThreshold: NewQuantity(20),
			LastRestock:  "2024-01-14",
			Priority:     PriorityLow,
			Status:       StatusLowStock,
			AlertDate:    "2024-01-23",
			Supplier:     "Fashion Forward",
		},
		{
			ID:           "7",
			ProductID:    "PROD-007",
			ProductName:  "Smartphone Case (Clear)",
			Category:     "Electronics",
			CurrentStock: NewQuantity(0),
			MinThreshold: NewQuantity(30),
			LastRestock:  "2024-01-08",
			Priority:     PriorityMedium,
			Status:       StatusOutOfStock,
			AlertDate:    "2024-01-17",
			Supplier:     "TechSupply Co.",
		},
		{
			ID:           "8",
			ProductID:    "PROD-008",
			ProductName:  "Protein Powder (Vanilla)",
			Category:     "Health & Wellness",
			CurrentStock: NewQuantity(1),
			MinThreshold: NewQuantity(5),
			LastRestock:  "2024-01-19",
			Priority:     PriorityHigh,
			Status:       StatusLowStock,
			AlertDate:    "2024-01-24",
			Supplier:     "Health Plus",
		},
	}
}
