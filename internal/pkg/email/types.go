// internal/pkg/email/types.go
package email

// Email represents an email message
type Email struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
}

// OrderLine is one cart line rendered in the confirmation mail
type OrderLine struct {
	Name     string
	Quantity int
	Amount   string
}

// OrderConfirmationData feeds the order confirmation template
type OrderConfirmationData struct {
	SiteName       string
	CustomerName   string
	OrderNumber    string
	Lines          []OrderLine
	Total          string
	Discount       string
	PaymentMethod  string
	DeliveryMethod string
	Paid           bool
}
