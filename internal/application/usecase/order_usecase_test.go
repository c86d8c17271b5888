package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
)

type memOrders struct {
	mu     sync.Mutex
	orders []*entity.Order
	err    error
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *memOrders) List(_ context.Context) ([]*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]*entity.Order(nil), m.orders...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memReceipts struct {
	saved     map[string]string
	removed   []string
	removeErr error
}

func (m *memReceipts) Save(_ context.Context, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[name] = string(b)
	return "/uploads/receipts/" + name, nil
}

func (m *memReceipts) Remove(_ context.Context, name string) error {
	m.removed = append(m.removed, name)
	delete(m.saved, name)
	return m.removeErr
}

var ana = entity.Identity{UserID: "u-1", Name: "Ana", Role: entity.RoleUser, Phone: "555", UserClass: "C1"}

func TestOrderCreate_IdentidadDelToken(t *testing.T) {
	repo := &memOrders{}
	uc := NewOrderUseCase(repo, &memReceipts{})

	order, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{
		OrderNumber:   "O1",
		OrderType:     "pickup",
		Items:         `[{"sku":"mochi","qty":2}]`,
		Notes:         "sin azúcar",
		Total:         json.Number("9.99"),
		PaymentMethod: "cash",
	}, nil)
	require.NoError(t, err)

	require.Len(t, repo.orders, 1)
	assert.Equal(t, "u-1", order.UserID)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, "555", order.UserPhone)
	assert.Equal(t, "C1", order.UserClass, "class vacío toma el de la identidad")
	assert.Equal(t, "sin azúcar", order.Notes)
	assert.Equal(t, "9.99", order.TotalAmount.String())
	assert.NotEmpty(t, order.ID)
}

func TestOrderCreate_ConComprobante(t *testing.T) {
	receipts := &memReceipts{}
	uc := NewOrderUseCase(&memOrders{}, receipts)
	uc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	order, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{
		OrderNumber: "O2",
		OrderType:   "delivery",
		Class:       "C9",
		Notes:       "pagado",
		Total:       "12",
	}, &ReceiptUpload{Filename: "foto.PNG", Content: strings.NewReader("png-bytes")})
	require.NoError(t, err)

	assert.Equal(t, "C9", order.UserClass)
	re := regexp.MustCompile(`^pagado\n\[Receipt: /uploads/receipts/receipt-1700000000123-[0-9a-f]{8}\.png\]$`)
	assert.Regexp(t, re, order.Notes)
	require.Len(t, receipts.saved, 1)
	for _, content := range receipts.saved {
		assert.Equal(t, "png-bytes", content)
	}
}

func TestOrderCreate_Validaciones(t *testing.T) {
	uc := NewOrderUseCase(&memOrders{}, &memReceipts{})
	cases := map[string]dto.CreateOrderRequest{
		"sin orderNumber": {OrderType: "pickup", Total: "1"},
		"sin orderType":   {OrderNumber: "O1", Total: "1"},
		"sin total":       {OrderNumber: "O1", OrderType: "pickup"},
		"total inválido":  {OrderNumber: "O1", OrderType: "pickup", Total: "abc"},
		"total negativo":  {OrderNumber: "O1", OrderType: "pickup", Total: "-1"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), ana, in, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestOrderCreate_SinIdentidad(t *testing.T) {
	uc := NewOrderUseCase(&memOrders{}, &memReceipts{})
	_, err := uc.Create(context.Background(), entity.Identity{}, dto.CreateOrderRequest{OrderNumber: "O1", OrderType: "x", Total: "1"}, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrderCreate_ErrorDeAlmacen(t *testing.T) {
	boom := errors.New("db caída")
	uc := NewOrderUseCase(&memOrders{err: boom}, &memReceipts{})
	_, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{OrderNumber: "O1", OrderType: "x", Total: "1"}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestOrderCreate_ErrorDeAlmacenBorraElComprobante(t *testing.T) {
	boom := errors.New("db caída")
	receipts := &memReceipts{}
	uc := NewOrderUseCase(&memOrders{err: boom}, receipts)

	_, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{OrderNumber: "O1", OrderType: "x", Total: "1"},
		&ReceiptUpload{Filename: "pago.png", Content: strings.NewReader("png")})
	assert.ErrorIs(t, err, boom)
	require.Len(t, receipts.removed, 1)
	assert.Empty(t, receipts.saved, "el comprobante no debe quedar huérfano")
}

func TestOrderCreate_FalloAlBorrarComprobanteNoOcultaElError(t *testing.T) {
	boom := errors.New("db caída")
	receipts := &memReceipts{removeErr: errors.New("disco lleno")}
	uc := NewOrderUseCase(&memOrders{err: boom}, receipts)

	_, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{OrderNumber: "O1", OrderType: "x", Total: "1"},
		&ReceiptUpload{Filename: "pago.png", Content: strings.NewReader("png")})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, receipts.removed, 1)
}

func TestOrderCreate_SinComprobanteNoBorraNada(t *testing.T) {
	receipts := &memReceipts{}
	uc := NewOrderUseCase(&memOrders{err: errors.New("db caída")}, receipts)

	_, err := uc.Create(context.Background(), ana, dto.CreateOrderRequest{OrderNumber: "O1", OrderType: "x", Total: "1"}, nil)
	assert.Error(t, err)
	assert.Empty(t, receipts.removed)
}

func TestReceiptName_SinColisiones(t *testing.T) {
	now := time.UnixMilli(42)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := receiptName(now, "r.jpg")
		assert.False(t, seen[n], "nombre repetido %s", n)
		seen[n] = true
		assert.True(t, strings.HasPrefix(n, "receipt-42-"))
		assert.True(t, strings.HasSuffix(n, ".jpg"))
	}
	assert.NotContains(t, receiptName(now, "../../etc/passwd"), "/")
}
