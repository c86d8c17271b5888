package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/application/usecase"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/metrics"
)

// ReceiptField nombre del campo multipart con el comprobante.
const ReceiptField = "receipt"

// OrderHandler ingesta de pedidos (protegido).
type OrderHandler struct {
	uc         *usecase.OrderUseCase
	maxReceipt int64
	metrics    *metrics.Metrics
}

// NewOrderHandler construye el handler. maxReceipt es el tamaño máximo del comprobante en bytes.
func NewOrderHandler(uc *usecase.OrderUseCase, maxReceipt int64, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{uc: uc, maxReceipt: maxReceipt, metrics: m}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        orderNumber    formData  string  true   "Número de pedido"
// @Param        orderType      formData  string  true   "Tipo de pedido"
// @Param        class          formData  string  false  "Clase (por defecto la del usuario)"
// @Param        items          formData  string  false  "Detalle del pedido"
// @Param        notes          formData  string  false  "Notas"
// @Param        total          formData  number  true   "Total"
// @Param        paymentMethod  formData  string  false  "Medio de pago"
// @Param        receipt        formData  file    false  "Comprobante"
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	who, ok := GetIdentity(c)
	if !ok {
		return unauthorized(c, "UNAUTHORIZED", "Unauthorized: No token provided.")
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body."})
	}

	var receipt *usecase.ReceiptUpload
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile(ReceiptField)
		if err == nil {
			if h.maxReceipt > 0 && fh.Size > h.maxReceipt {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Code:    "UPLOAD_TOO_LARGE",
					Message: fmt.Sprintf("File Upload Error: receipt exceeds %d bytes.", h.maxReceipt),
				})
			}
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UPLOAD_ERROR", Message: "File Upload Error: " + err.Error()})
			}
			defer f.Close()
			receipt = &usecase.ReceiptUpload{Filename: fh.Filename, Content: f}
		}
	}

	if _, err := h.uc.Create(c.UserContext(), who, in, receipt); err != nil {
		return writeError(c, err)
	}
	h.metrics.OrderCreated()
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Order created successfully!"})
}
