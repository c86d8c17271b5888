package usecase

import (
	"context"
	"strings"

	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
)

// AdminUseCase consultas y borrados disponibles solo para admins.
type AdminUseCase struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(users repository.UserRepository, orders repository.OrderRepository) *AdminUseCase {
	return &AdminUseCase{users: users, orders: orders}
}

// ListUsers devuelve todos los usuarios (sin hash) del más reciente al más antiguo.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// ListOrders devuelve todos los pedidos del más reciente al más antiguo.
func (uc *AdminUseCase) ListOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// DeleteOrder elimina un pedido. Devuelve domain.ErrNotFound si no existe (también en un segundo borrado).
// El comprobante referenciado en las notas no se toca.
func (uc *AdminUseCase) DeleteOrder(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Invalid("order id is required.")
	}
	return uc.orders.Delete(ctx, id)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		UserClass: u.UserClass,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		OrderNumber:   o.OrderNumber,
		OrderType:     o.OrderType,
		UserClass:     o.UserClass,
		UserPhone:     o.UserPhone,
		OrderDetails:  o.OrderDetails,
		Notes:         o.Notes,
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
	}
}
