package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User representa una cuenta registrada.
type User struct {
	ID           string
	Name         string
	Email        string // único en el almacén
	PasswordHash string // bcrypt hash, nunca plano ni en logs
	UserClass    string
	Phone        string
	Role         string // user, admin
	CreatedAt    time.Time
}
