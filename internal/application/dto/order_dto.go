package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Payload es un valor opaco que acepta tanto un string como cualquier JSON (p. ej. la lista de ítems).
// En multipart llega como texto; en JSON puede llegar como array u objeto y se guarda serializado.
type Payload string

// UnmarshalJSON guarda strings tal cual y cualquier otro valor JSON en su forma compacta.
func (p *Payload) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Payload(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*p = Payload(buf.String())
	return nil
}

// CreateOrderRequest campos del pedido (multipart o JSON). La identidad sale del token, nunca del body.
type CreateOrderRequest struct {
	OrderNumber   string      `json:"orderNumber" form:"orderNumber"`
	OrderType     string      `json:"orderType" form:"orderType"`
	Class         string      `json:"class" form:"class"`
	Items         Payload     `json:"items" form:"items"`
	Notes         string      `json:"notes" form:"notes"`
	Total         json.Number `json:"total" form:"total"`
	PaymentMethod string      `json:"paymentMethod" form:"paymentMethod"`
}

// OrderResponse salida de un pedido para el panel admin.
type OrderResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	OrderNumber   string          `json:"order_number"`
	OrderType     string          `json:"order_type"`
	UserClass     string          `json:"user_class"`
	UserPhone     string          `json:"user_phone"`
	OrderDetails  string          `json:"order_details"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}
