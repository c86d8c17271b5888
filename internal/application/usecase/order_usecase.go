package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/application/ports"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
)

const receiptCleanupTimeout = 5 * time.Second

// ReceiptUpload comprobante opcional adjunto al pedido.
type ReceiptUpload struct {
	Filename string // nombre original (solo se usa la extensión)
	Content  io.Reader
}

// OrderUseCase ingesta de pedidos.
type OrderUseCase struct {
	repo     repository.OrderRepository
	receipts ports.ReceiptStore
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso con el repositorio y el almacén de comprobantes.
func NewOrderUseCase(repo repository.OrderRepository, receipts ports.ReceiptStore) *OrderUseCase {
	return &OrderUseCase{repo: repo, receipts: receipts, now: time.Now}
}

// Create valida y persiste un pedido a nombre de la identidad autenticada.
// userId, nombre y teléfono salen de la identidad, nunca del body.
func (uc *OrderUseCase) Create(ctx context.Context, who entity.Identity, in dto.CreateOrderRequest, receipt *ReceiptUpload) (*entity.Order, error) {
	if who.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	orderNumber := strings.TrimSpace(in.OrderNumber)
	orderType := strings.TrimSpace(in.OrderType)
	if orderNumber == "" || orderType == "" || strings.TrimSpace(in.Total.String()) == "" {
		return nil, domain.Invalid("orderNumber, orderType and total are required.")
	}
	total, err := decimal.NewFromString(strings.TrimSpace(in.Total.String()))
	if err != nil || total.IsNegative() {
		return nil, domain.Invalid("total must be a non-negative number.")
	}
	userClass := strings.TrimSpace(in.Class)
	if userClass == "" {
		userClass = who.UserClass
	}

	now := uc.now().UTC()
	notes := in.Notes
	savedReceipt := ""
	if receipt != nil && receipt.Content != nil {
		name := receiptName(now, receipt.Filename)
		path, err := uc.receipts.Save(ctx, name, receipt.Content)
		if err != nil {
			return nil, fmt.Errorf("guardar comprobante: %w", err)
		}
		savedReceipt = name
		notes += fmt.Sprintf(entity.ReceiptMarker, path)
	}

	order := &entity.Order{
		ID:            uuid.NewString(),
		UserID:        who.UserID,
		CustomerName:  who.Name,
		OrderNumber:   orderNumber,
		OrderType:     orderType,
		UserClass:     userClass,
		UserPhone:     who.Phone,
		OrderDetails:  string(in.Items),
		Notes:         notes,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		TotalAmount:   total,
		CreatedAt:     now,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		if savedReceipt != "" {
			uc.discardReceipt(savedReceipt)
		}
		return nil, err
	}
	return order, nil
}

// discardReceipt borra un comprobante huérfano. Usa un contexto propio porque
// el de la request puede ser justo el que venció; un fallo solo se registra.
func (uc *OrderUseCase) discardReceipt(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), receiptCleanupTimeout)
	defer cancel()
	if err := uc.receipts.Remove(ctx, name); err != nil {
		log.Warn().Err(err).Str("receipt", name).Msg("no se pudo borrar el comprobante huérfano")
	}
}

// receiptName genera receipt-<millis>-<aleatorio><ext>; el sufijo evita colisiones en el mismo milisegundo.
func receiptName(now time.Time, original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("receipt-%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
}
