package fixture

import "storefront/internal/models"

// Hard-coded catalog, mirroring the static data the storefront launched
// with. Categories reference products by the Categories field.
var categories = []models.Category{
	{ID: "audio", Name: "Audio", Description: "Headphones, speakers and everything in between"},
	{ID: "wearables", Name: "Wearables", Description: "Watches and trackers"},
	{ID: "accessories", Name: "Accessories", Description: "Cables, chargers and stands"},
	{ID: "home", Name: "Smart Home", Description: "Lights, plugs and hubs"},
}

var products = []models.Product{
	{
		ID:          "1",
		Name:        "Aurora Wireless Headphones",
		Description: "Over-ear headphones with 40h battery life and active noise cancelling.",
		Price:       models.Money{Amount: 129.99, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/aurora-front.jpg",
			"https://img.example.com/products/aurora-side.jpg",
		},
		Categories: []string{"audio"},
	},
	{
		ID:          "2",
		Name:        "Pulse Mini Speaker",
		Description: "Pocket-sized bluetooth speaker, IPX7 waterproof.",
		Price:       models.Money{Amount: 39.50, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/pulse-mini.jpg",
		},
		Categories: []string{"audio"},
	},
	{
		ID:          "3",
		Name:        "Stride Fitness Band",
		Description: "Heart rate, sleep tracking and two-week battery.",
		Price:       models.Money{Amount: 59.00, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/stride-band.jpg",
			"https://img.example.com/products/stride-band-strap.jpg",
		},
		Categories: []string{"wearables"},
	},
	{
		ID:          "4",
		Name:        "Nova Smartwatch",
		Description: "AMOLED display, GPS and contactless payments.",
		Price:       models.Money{Amount: 199.00, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/nova-watch.jpg",
		},
		Categories: []string{"wearables"},
	},
	{
		ID:          "5",
		Name:        "Braided USB-C Cable 2m",
		Description: "100W fast-charge cable with aluminium connectors.",
		Price:       models.Money{Amount: 12.99, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/usbc-cable.jpg",
		},
		Categories: []string{"accessories"},
	},
	{
		ID:          "6",
		Name:        "Desk Charging Stand",
		Description: "Charges a phone, watch and earbuds at once.",
		Price:       models.Money{Amount: 45.00, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/charging-stand.jpg",
		},
		Categories: []string{"accessories", "home"},
	},
	{
		ID:          "7",
		Name:        "Glow Smart Bulb Duo",
		Description: "Two dimmable colour bulbs, app and voice controlled.",
		Price:       models.Money{Amount: 24.90, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/glow-duo.jpg",
		},
		Categories: []string{"home"},
	},
	{
		ID:          "8",
		Name:        "Hub One",
		Description: "Bridges zigbee and wifi devices under one roof.",
		Price:       models.Money{Amount: 89.00, Currency: "USD"},
		Images: models.ImageList{
			"https://img.example.com/products/hub-one.jpg",
		},
		Categories: []string{"home"},
	},
}
