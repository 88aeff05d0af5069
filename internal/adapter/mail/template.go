package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

const defaultCustomerName = "Customer"

// Confirmation holds data rendered into the order confirmation email.
type Confirmation struct {
	UserName    string
	Items       []model.OrderItem
	TotalAmount float64
	Status      model.OrderStatus
	Year        int
}

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<div style="font-family:Arial, sans-serif; background:#f9fafb; padding:20px;">
  <div style="max-width:600px; margin:auto; background:white; padding:20px; border-radius:10px;">
    <h2 style="color:#4f46e5;">Thank you for your order, {{.UserName}}!</h2>
    <p style="font-size:16px; color:#333;">We're excited to let you know your order has been placed successfully.</p>
    <h3 style="margin-top:20px;">Order Details:</h3>
    <table style="width:100%; border-collapse:collapse;">
      <thead>
        <tr style="background:#f3f4f6;">
          <th style="padding:8px;">#</th>
          <th style="padding:8px;">Product</th>
          <th style="padding:8px;">Price</th>
          <th style="padding:8px;">Qty</th>
        </tr>
      </thead>
      <tbody>
{{- range $i, $item := .Items}}
        <tr>
          <td style="padding:8px;border-bottom:1px solid #eee;">{{inc $i}}</td>
          <td style="padding:8px;border-bottom:1px solid #eee;">{{$item.Name}}</td>
          <td style="padding:8px;border-bottom:1px solid #eee;">&#8377;{{$item.Price}}</td>
          <td style="padding:8px;border-bottom:1px solid #eee;">{{$item.Quantity}}</td>
        </tr>
{{- end}}
      </tbody>
    </table>
    <h3 style="margin-top:20px;">Total Amount: &#8377;{{money .TotalAmount}}</h3>
    <p style="margin-top:10px;">Current Status: <b>{{.Status}}</b></p>
    <hr style="margin:20px 0;" />
    <p style="font-size:14px; color:#555;">You can track your order status anytime from your E-Shop dashboard.</p>
    <p style="font-size:12px; color:#888;">&copy; {{.Year}} E-Shop Pvt. Ltd.</p>
  </div>
</div>
`))

// NewConfirmation builds template data for order, using the buyer's name when known.
func NewConfirmation(buyerName string, order model.Order, now time.Time) Confirmation {
	if buyerName == "" {
		buyerName = defaultCustomerName
	}
	return Confirmation{
		UserName:    buyerName,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Year:        now.Year(),
	}
}

// RenderConfirmation produces the confirmation message addressed to to.
func RenderConfirmation(to string, data Confirmation) (Message, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your Order Confirmation - Status: %s", data.Status),
		HTML:    buf.String(),
	}, nil
}
