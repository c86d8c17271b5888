package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptMarker es el formato con el que se anexa la ruta del comprobante a las notas.
const ReceiptMarker = "\n[Receipt: %s]"

// Order representa un pedido. Se crea una vez y solo se elimina por acción de un admin.
// UserID es una referencia al usuario que lo envió, no una relación de propiedad.
type Order struct {
	ID            string
	UserID        string
	CustomerName  string
	OrderNumber   string
	OrderType     string
	UserClass     string
	UserPhone     string
	OrderDetails  string // payload opaco (p. ej. lista de ítems en JSON)
	Notes         string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}
