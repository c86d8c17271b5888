package gormdb

import (
	"context"
	"fmt"

	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre GORM.
type OrderRepo struct {
	db *gorm.DB
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if err := r.db.WithContext(ctx).Create(orderFromEntity(o)).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// List lista pedidos del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	var rows []orderModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Delete elimina un pedido por ID; domain.ErrNotFound si no había fila.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&orderModel{})
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
