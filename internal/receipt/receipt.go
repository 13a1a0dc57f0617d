// Package receipt renders 80mm printable till receipts for sales.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fcsolar/pos/internal/sale"
)

// width is the character budget of an 80mm thermal printer line.
const width = 40

// StoreInfo is the header and footer identity printed on every receipt.
type StoreInfo struct {
	Name         string
	AddressLines []string
	Phone        string
}

type Renderer struct {
	store   StoreInfo
	printer *message.Printer
}

func NewRenderer(store StoreInfo) *Renderer {
	return &Renderer{
		store:   store,
		printer: message.NewPrinter(language.English),
	}
}

func (r *Renderer) amount(centimes int64) string {
	return r.printer.Sprintf("HTG %.2f", float64(centimes)/100)
}

func center(s string) string {
	if len(s) >= width {
		return s
	}

	pad := (width - len(s)) / 2

	return strings.Repeat(" ", pad) + s
}

// Render produces the plain-text receipt for a sale.
func (r *Renderer) Render(s *sale.Sale) string {
	var sb strings.Builder

	kind := "Order Sale Receipt"
	if s.Type == sale.TypeDirect {
		kind = "Direct Sale Receipt"
	}

	sb.WriteString(center(r.store.Name) + "\n")
	sb.WriteString(center(kind) + "\n\n")

	fmt.Fprintf(&sb, "Date: %s\n", s.Date.Format(time.DateTime))
	fmt.Fprintf(&sb, "Receipt No: %s\n", s.ID)
	fmt.Fprintf(&sb, "Cashier: %s\n", s.Cashier)

	customer := s.CustomerName
	if customer == "" {
		customer = "Walk-in Customer"
	}
	fmt.Fprintf(&sb, "Customer: %s\n", customer)

	sb.WriteString(strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&sb, "%-12s %3s %11s %12s\n", "Item", "Qty", "Price", "Total")

	for _, item := range s.Items {
		lineTotal := int64(item.Quantity) * item.Price
		fmt.Fprintf(&sb, "%-12s %3d %11s %12s\n",
			item.ProductID, item.Quantity, r.amount(item.Price), r.amount(lineTotal))
	}

	sb.WriteString(strings.Repeat("-", width) + "\n")

	fmt.Fprintf(&sb, "%-20s %19s\n", "Subtotal:", r.amount(s.Subtotal))
	fmt.Fprintf(&sb, "%-20s %19s\n", "Discount:", r.amount(s.Discount))
	fmt.Fprintf(&sb, "%-20s %19s\n", "Total:", r.amount(s.Total))
	fmt.Fprintf(&sb, "%-20s %19s\n", "Payment Received:", r.amount(s.PaymentReceived))
	fmt.Fprintf(&sb, "%-20s %19s\n", "Change:", r.amount(s.Change))

	sb.WriteString("\n")
	sb.WriteString(center("MERCI POUR VOTRE ACHAT !") + "\n")

	for _, line := range r.store.AddressLines {
		sb.WriteString(center(line) + "\n")
	}

	if r.store.Phone != "" {
		sb.WriteString(center("Tel: "+r.store.Phone) + "\n")
	}

	return sb.String()
}
