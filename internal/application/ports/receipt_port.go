package ports

import (
	"context"
	"io"
)

// ReceiptStore guarda comprobantes de pago subidos junto a un pedido.
// Save devuelve la ruta/URL pública que se anexa a las notas del pedido.
// El archivo no tiene ciclo de vida ligado al pedido: borrar el pedido no lo borra.
// Remove solo se usa para deshacer un Save cuyo pedido no llegó a persistirse.
type ReceiptStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}
