package models

// Static presentational content for the marketing pages. The site renders
// this copy as-is; nothing here is user-editable.

type Location struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	MapURL  string `json:"mapUrl"`
}

type StoreHours struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

type StoreInfo struct {
	BusinessName   string       `json:"businessName"`
	Tagline        string       `json:"tagline"`
	PriceMatch     string       `json:"priceMatch"`
	Hours          []StoreHours `json:"hours"`
	PaymentMethods []string     `json:"paymentMethods"`
	ContactNotes   []string     `json:"contactNotes"`
	Features       []string     `json:"features"`
}

var Locations = []Location{
	{
		Name:    "MY LIQUOR Drayton Valley",
		Address: "5051 50 Ave, Drayton Valley, AB",
		Phone:   "(780) 542-4556",
		MapURL:  "https://maps.google.com/?q=5051+50+Ave+Drayton+Valley",
	},
}

var Info = StoreInfo{
	BusinessName: "MY LIQUOR",
	Tagline:      "Curated selections updated weekly",
	PriceMatch:   "WE MATCH ALL DRAYTON VALLEY COMPETITOR FLYER PRICES",
	Hours: []StoreHours{
		{Days: "Monday - Saturday", Hours: "10 AM - 10 PM"},
		{Days: "Sunday", Hours: "11 AM - 8 PM"},
	},
	PaymentMethods: []string{"Interac", "Visa", "Mastercard", "Amex", "Cash", "Debit"},
	ContactNotes:   []string{"Visit us in Drayton Valley", "19+ Valid ID Required"},
	Features: []string{
		"Weekly flyer specials",
		"Price match guarantee",
		"Wide spirits, wine and beer selection",
		"Cold beer and coolers",
	},
}
