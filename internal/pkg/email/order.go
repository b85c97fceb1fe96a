// internal/pkg/email/order.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
)

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>Thank you for your order, {{.CustomerName}}!</h2>
<p>Order number: <strong>{{.OrderNumber}}</strong></p>
<table>
{{range .Lines}}<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td><td>{{.Amount}}</td></tr>
{{end}}</table>
<p>Total: <strong>{{.Total}}</strong>{{if .Discount}} (you saved {{.Discount}}){{end}}</p>
<p>Payment: {{.PaymentMethod}}{{if .Paid}}, paid{{end}}</p>
<p>Delivery: {{.DeliveryMethod}}</p>
<p>{{.SiteName}}</p>
</body>
</html>`))

// OrderMailer sends an order confirmation to the customer
type OrderMailer struct {
	sender   *Sender
	siteName string
	currency string
}

// NewOrderMailer creates the confirmation mail notifier
func NewOrderMailer(sender *Sender, siteName, currency string) *OrderMailer {
	return &OrderMailer{
		sender:   sender,
		siteName: siteName,
		currency: currency,
	}
}

// NotifyOrderPlaced renders and sends the confirmation mail
func (m *OrderMailer) NotifyOrderPlaced(ctx context.Context, order checkout.PlacedOrder) error {
	html, err := m.Render(order)
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, &Email{
		To:          []string{order.Customer.Email},
		Subject:     fmt.Sprintf("Order %s confirmed", order.OrderNumber),
		HTMLContent: html,
	})
}

// Render builds the confirmation mail body
func (m *OrderMailer) Render(order checkout.PlacedOrder) (string, error) {
	data := OrderConfirmationData{
		SiteName:       m.siteName,
		CustomerName:   order.Customer.Name,
		OrderNumber:    order.OrderNumber,
		Total:          m.money(order.Cart.Total),
		PaymentMethod:  order.Customer.PaymentMethod.Label(),
		DeliveryMethod: order.Customer.DeliveryMethod.Label(),
		Paid:           order.Status == checkout.StatusSucceeded,
	}
	if order.Cart.Discount > 0 {
		data.Discount = m.money(order.Cart.Discount)
	}
	for _, item := range order.Cart.Items {
		data.Lines = append(data.Lines, OrderLine{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Amount:   m.money(item.Product.Price * int64(item.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render order confirmation template: %w", err)
	}
	return buf.String(), nil
}

func (m *OrderMailer) money(minor int64) string {
	return fmt.Sprintf("%s %s", payment.MajorUnits(minor), m.currency)
}
