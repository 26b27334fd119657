package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superAdmin" // Platform owner
	RoleAdmin      Role = "admin"      // Salon manager
	RoleUser       Role = "user"       // Barber, linked to one employee row
)

// IsAdmin reports whether the role manages the salon (admin or superAdmin).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Siret        *string
	Phone        *string
	LogoPath     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
