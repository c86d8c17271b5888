package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/application/usecase"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
)

// AdminHandler consultas y borrado del panel admin (requiere rol admin).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListOrders godoc
// @Summary      Listar pedidos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/orders [get]
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteOrder godoc
// @Summary      Borrar pedido
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [delete]
func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	err := h.uc.DeleteOrder(c.UserContext(), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Order not found."})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Order deleted successfully."})
}
