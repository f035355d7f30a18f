package domain

import "fmt"

// Role роль сотрудника
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleViewer   Role = "viewer"
)

// IsValid возвращает true для известной роли
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleViewer:
		return true
	}
	return false
}

// ParseRole конвертирует строку в Role с валидацией
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// Actor неизменяемое значение, описывающее того, кто выполняет действие
// Проверка прав строится только на нём, без глобального состояния
type Actor struct {
	ID          int64
	Role        Role
	Permissions PermissionSet
	Active      bool
}
