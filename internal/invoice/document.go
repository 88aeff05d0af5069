package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

const (
	notAvailable = "N/A"
	dateLayout   = "2006-01-02"
	numberPrefix = "INV-"
	numberSuffix = 6

	// ContentType is the media type of rendered invoices.
	ContentType = "application/pdf"
)

// Line is a single itemized row of an invoice.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Document holds everything printed on an invoice. It is derived from an
// order and carries no rendering concerns.
type Document struct {
	OrderID string
	Number  string
	Date    string
	BillTo  model.PartyInfo
	Seller  model.PartyInfo
	Lines   []Line
	Total   float64
	Status  model.OrderStatus
}

// File is a rendered invoice ready to be served.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Number derives the invoice number from an order id.
func Number(orderID string) string {
	suffix := orderID
	if len(suffix) > numberSuffix {
		suffix = suffix[len(suffix)-numberSuffix:]
	}
	return numberPrefix + strings.ToUpper(suffix)
}

// FileName returns the download name for the order's invoice.
func FileName(orderID string) string {
	return fmt.Sprintf("invoice-%s.pdf", orderID)
}

// NewDocument builds the invoice for order. buyer and seller may be nil when
// the accounts no longer exist.
func NewDocument(order model.Order, buyer, seller *model.User) Document {
	doc := Document{
		OrderID: order.ID,
		Number:  Number(order.ID),
		Date:    order.CreatedAt.UTC().Format(dateLayout),
		BillTo:  party(buyer),
		Seller:  party(seller),
		Total:   order.TotalAmount,
		Status:  order.Status,
		Lines:   make([]Line, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		doc.Lines = append(doc.Lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Total:     item.LineTotal(),
		})
	}
	return doc
}

func party(u *model.User) model.PartyInfo {
	info := model.PartyInfo{Name: notAvailable, Email: notAvailable}
	if u == nil {
		return info
	}
	if u.Name != "" {
		info.Name = u.Name
	}
	if u.Email != "" {
		info.Email = u.Email
	}
	return info
}

// issuedAt parses the document date back for PDF metadata.
func (d Document) issuedAt() time.Time {
	t, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
