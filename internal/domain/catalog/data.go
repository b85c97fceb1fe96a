// internal/domain/catalog/data.go
package catalog

func price(v int64) *int64 { return &v }

func percent(v int) *int { return &v }

// StaticCategories returns the built-in category list
func StaticCategories() []Category {
	return []Category{
		{Slug: "smartphones", Name: "Smartphones and watches", SortOrder: 1},
		{Slug: "laptops", Name: "Laptops", SortOrder: 2},
		{Slug: "components", Name: "PC components", SortOrder: 3},
		{Slug: "accessories", Name: "Accessories", SortOrder: 4},
	}
}

// StaticProducts returns the built-in storefront catalog. Prices are in kopecks.
func StaticProducts() []Product {
	return []Product{
		{
			ID: "p-1001", Slug: "apple-iphone-15-128gb", Name: "Apple iPhone 15 128GB",
			Category: "smartphones", Subcategory: "phones", Brand: "Apple", Model: "iPhone 15", SKU: "APL-IP15-128",
			Price: 7999000, OldPrice: price(8999000), Discount: percent(11), Cashback: price(80000),
			Stock: 14, Rating: 4.8, ReviewCount: 126,
			Description:      "6.1-inch Super Retina XDR display, A16 Bionic chip and a 48 MP main camera.",
			ShortDescription: "A16 Bionic, 48 MP camera",
			Specifications: []Specification{
				{Name: "Display", Value: "6.1\" OLED"},
				{Name: "Storage", Value: "128 GB"},
			},
			Images: []Image{
				{ID: "img-1001-1", URL: "/images/iphone-15-front.webp", Alt: "iPhone 15 front", IsPrimary: true},
				{ID: "img-1001-2", URL: "/images/iphone-15-back.webp", Alt: "iPhone 15 back"},
			},
			Features:     []string{"USB-C", "Dynamic Island"},
			IsBestseller: true, IsRecommended: true, SortOrder: 1,
		},
		{
			ID: "p-1002", Slug: "samsung-galaxy-s24-256gb", Name: "Samsung Galaxy S24 256GB",
			Category: "smartphones", Subcategory: "phones", Brand: "Samsung", Model: "Galaxy S24", SKU: "SMS-S24-256",
			Price: 7499000, Stock: 9, Rating: 4.7, ReviewCount: 88,
			Description: "Compact flagship with a 120 Hz display and Galaxy AI features.",
			Specifications: []Specification{
				{Name: "Display", Value: "6.2\" AMOLED 120 Hz"},
				{Name: "Storage", Value: "256 GB"},
			},
			Images: []Image{
				{ID: "img-1002-1", URL: "/images/galaxy-s24.webp", Alt: "Galaxy S24", IsPrimary: true},
			},
			IsNew: true, SortOrder: 2,
		},
		{
			ID: "p-1003", Slug: "apple-watch-series-9-45mm", Name: "Apple Watch Series 9 45mm",
			Category: "smartphones", Subcategory: "watches", Brand: "Apple", Model: "Watch Series 9", SKU: "APL-AW9-45",
			Price: 4299000, OldPrice: price(4599000), Discount: percent(7),
			Stock: 5, Rating: 4.9, ReviewCount: 41,
			Description: "Always-on Retina display, double tap gesture and blood oxygen sensor.",
			Specifications: []Specification{
				{Name: "Case", Value: "45 mm aluminium"},
			},
			Images: []Image{
				{ID: "img-1003-1", URL: "/images/watch-s9.webp", Alt: "Apple Watch Series 9", IsPrimary: true},
			},
			IsNew: true, SortOrder: 3,
		},
		{
			ID: "p-2001", Slug: "lenovo-ideapad-slim-5", Name: "Lenovo IdeaPad Slim 5 16\"",
			Category: "laptops", Brand: "Lenovo", Model: "IdeaPad Slim 5", SKU: "LNV-IPS5-16",
			Price: 6899000, OldPrice: price(7499000), Discount: percent(8),
			Stock: 3, Rating: 4.5, ReviewCount: 17,
			Description: "Ryzen 7 laptop with 16 GB RAM and a 16-inch WUXGA display.",
			Specifications: []Specification{
				{Name: "CPU", Value: "AMD Ryzen 7 7730U"},
				{Name: "RAM", Value: "16 GB"},
			},
			Images: []Image{
				{ID: "img-2001-1", URL: "/images/ideapad-slim-5.webp", Alt: "IdeaPad Slim 5"},
			},
			IsBestseller: true, SortOrder: 4,
		},
		{
			ID: "p-3001", Slug: "kingston-fury-beast-32gb-ddr5", Name: "Kingston FURY Beast 32GB DDR5",
			Category: "components", Subcategory: "memory", Brand: "Kingston", Model: "FURY Beast", SKU: "KNG-FB-32D5",
			Price: 1149000, Stock: 40, Rating: 4.6, ReviewCount: 63,
			Description: "2x16 GB DDR5-5600 kit with Intel XMP 3.0 support.",
			Specifications: []Specification{
				{Name: "Capacity", Value: "32 GB (2x16 GB)"},
				{Name: "Speed", Value: "5600 MT/s"},
			},
			Images: []Image{
				{ID: "img-3001-1", URL: "/images/fury-beast.webp", Alt: "FURY Beast DDR5", IsPrimary: true},
			},
			SortOrder: 5,
		},
		{
			ID: "p-3002", Slug: "samsung-990-pro-1tb", Name: "Samsung 990 PRO 1TB NVMe",
			Category: "components", Subcategory: "storage", Brand: "Samsung", Model: "990 PRO", SKU: "SMS-990P-1T",
			Price: 1399000, OldPrice: price(1599000), Discount: percent(13), Cashback: price(14000),
			Stock: 22, Rating: 4.9, ReviewCount: 204,
			Description: "PCIe 4.0 NVMe SSD with sequential reads up to 7450 MB/s.",
			Specifications: []Specification{
				{Name: "Interface", Value: "PCIe 4.0 x4"},
			},
			Images: []Image{
				{ID: "img-3002-1", URL: "/images/990-pro.webp", Alt: "990 PRO", IsPrimary: true},
			},
			IsBestseller: true, SortOrder: 6,
		},
		{
			ID: "p-4001", Slug: "hydrogel-screen-protector", Name: "Hydrogel screen protector",
			Category: "accessories", Subcategory: "protection", Brand: "Devia", Model: "Hydrogel Pro", SKU: "DVA-HGL-PRO",
			Price: 99000, Stock: 300, Rating: 4.4, ReviewCount: 512,
			Description: "Self-healing film that keeps full touch sensitivity.",
			Specifications: []Specification{
				{Name: "Thickness", Value: "0.15 mm"},
			},
			Images: []Image{
				{ID: "img-4001-1", URL: "/images/hydrogel.webp", Alt: "Hydrogel film", IsPrimary: true},
			},
			Features: []string{"Self-healing", "Anti-fingerprint"},
			IsNew:    true, IsRecommended: true, SortOrder: 7,
		},
		{
			ID: "p-4002", Slug: "anker-nano-65w-charger", Name: "Anker Nano 65W charger",
			Category: "accessories", Subcategory: "chargers", Brand: "Anker", Model: "Nano 65W", SKU: "ANK-NANO-65",
			Price: 349000, OldPrice: price(399000), Discount: percent(12),
			Stock: 0, Rating: 4.7, ReviewCount: 95,
			Description: "GaN charger with two USB-C ports and one USB-A port.",
			Specifications: []Specification{
				{Name: "Power", Value: "65 W"},
			},
			Images: []Image{
				{ID: "img-4002-1", URL: "/images/anker-nano.webp", Alt: "Anker Nano"},
			},
			SortOrder: 8,
		},
	}
}
