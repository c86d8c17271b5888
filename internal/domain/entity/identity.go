package entity

import "time"

// Identity es la identidad autenticada reconstruida del token en cada request.
// Es estado derivado: nunca se persiste.
type Identity struct {
	UserID    string
	Name      string
	Role      string
	Phone     string
	UserClass string
	ExpiresAt time.Time
}

// IsAdmin indica si la identidad tiene rol admin.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
