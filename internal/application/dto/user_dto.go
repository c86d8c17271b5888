package dto

import "time"

// RegisterRequest entrada para registro: todos los campos son obligatorios.
type RegisterRequest struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	UserClass string `json:"user_class" form:"user_class"`
	Phone     string `json:"phone" form:"phone"`
	Password  string `json:"password" form:"password"`
}

// RegisterResponse salida del registro (sin auto-login).
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserClass string    `json:"user_class"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
