package gormdb

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
)

// userModel fila de la tabla users.
type userModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	UserClass    string    `gorm:"column:user_class;size:64;not null"`
	Phone        string    `gorm:"size:32;not null"`
	Role         string    `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time `gorm:"index;not null"`
}

func (userModel) TableName() string { return "users" }

// orderModel fila de la tabla orders.
type orderModel struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"column:user_id;size:36;index;not null"`
	CustomerName  string          `gorm:"size:255"`
	OrderNumber   string          `gorm:"size:64;not null"`
	OrderType     string          `gorm:"size:32;not null"`
	UserClass     string          `gorm:"column:user_class;size:64"`
	UserPhone     string          `gorm:"column:user_phone;size:32"`
	OrderDetails  string          `gorm:"column:order_details;type:text"`
	Notes         string          `gorm:"type:text"`
	PaymentMethod string          `gorm:"size:32"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time       `gorm:"index;not null"`
}

func (orderModel) TableName() string { return "orders" }

func userFromEntity(u *entity.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		UserClass:    u.UserClass,
		Phone:        u.Phone,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		UserClass:    m.UserClass,
		Phone:        m.Phone,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

func orderFromEntity(o *entity.Order) *orderModel {
	return &orderModel{
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

func (m *orderModel) toEntity() *entity.Order {
	return &entity.Order{
		ID:            m.ID,
		UserID:        m.UserID,
		CustomerName:  m.CustomerName,
		OrderNumber:   m.OrderNumber,
		OrderType:     m.OrderType,
		UserClass:     m.UserClass,
		UserPhone:     m.UserPhone,
		OrderDetails:  m.OrderDetails,
		Notes:         m.Notes,
		PaymentMethod: m.PaymentMethod,
		TotalAmount:   m.TotalAmount,
		CreatedAt:     m.CreatedAt,
	}
}
