// internal/models/roles.go

package models

// Role представляет роль пользователя в системе
type Role string

// Константы для ролей
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid проверяет, что роль валидна
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin проверяет, является ли роль административной
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String возвращает строковое представление роли
func (r Role) String() string {
	return string(r)
}

// RoleFromString конвертирует string в Role
func RoleFromString(role string) (Role, bool) {
	r := Role(role)
	if r.IsValid() {
		return r, true
	}
	return "", false
}
