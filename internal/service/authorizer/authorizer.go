// Package authorizer проверка прав сотрудника
//
// Проверка строится из двух стратегий, объединённых через ИЛИ:
// переопределение по роли (admin, manager) и явный набор прав.
// Неактивный сотрудник не имеет прав вовсе.
// Результат носит рекомендательный характер для интерфейса, авторитетная
// проверка повторяется внутри каждой изменяющей операции.
package authorizer

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Strategy стратегия проверки права
type Strategy interface {
	Allows(actor domain.Actor, p domain.Permission) bool
}

// RoleOverride выдаёт все права ролям с полным доступом
type RoleOverride struct {
	Roles []domain.Role
}

// Allows implements Strategy
func (s RoleOverride) Allows(actor domain.Actor, _ domain.Permission) bool {
	for _, r := range s.Roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// ExplicitSet разрешает только права из набора сотрудника
type ExplicitSet struct{}

// Allows implements Strategy
func (ExplicitSet) Allows(actor domain.Actor, p domain.Permission) bool {
	return actor.Permissions.Has(p)
}

// Authorizer композиция стратегий через ИЛИ с проверкой активности
type Authorizer struct {
	strategies []Strategy
}

// New создает Authorizer из стратегий
func New(strategies ...Strategy) *Authorizer {
	return &Authorizer{strategies: strategies}
}

// Default стандартный Authorizer: admin и manager получают всё, остальные по набору
var Default = New(
	RoleOverride{Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	ExplicitSet{},
)

// HasPermission проверяет право
func (a *Authorizer) HasPermission(actor domain.Actor, p domain.Permission) bool {
	if !actor.Active {
		return false
	}
	for _, s := range a.strategies {
		if s.Allows(actor, p) {
			return true
		}
	}
	return false
}

// HasAny возвращает true, если есть хотя бы одно из прав
func (a *Authorizer) HasAny(actor domain.Actor, perms ...domain.Permission) bool {
	for _, p := range perms {
		if a.HasPermission(actor, p) {
			return true
		}
	}
	return false
}

// HasAll возвращает true, если есть все права
// Для пустого списка результат true
func (a *Authorizer) HasAll(actor domain.Actor, perms ...domain.Permission) bool {
	for _, p := range perms {
		if !a.HasPermission(actor, p) {
			return false
		}
	}
	return true
}

// CanManageBookings право на любое управление бронированиями
func (a *Authorizer) CanManageBookings(actor domain.Actor) bool {
	return a.HasAny(actor, domain.PermStartBooking, domain.PermCompleteBooking, domain.PermCancelBooking)
}

// CanViewBookings право на просмотр бронирований
func (a *Authorizer) CanViewBookings(actor domain.Actor) bool {
	return a.HasAny(actor, domain.PermViewOwnBookings, domain.PermViewAllBookings)
}

// Capabilities набор флагов для скрытия элементов интерфейса
type Capabilities struct {
	CanViewBookings   bool
	CanViewAll        bool
	CanManageBookings bool
	CanStart          bool
	CanComplete       bool
	CanCancel         bool
	Permissions       []domain.Permission
}

// CapabilitiesOf вычисляет флаги для сотрудника
func (a *Authorizer) CapabilitiesOf(actor domain.Actor) Capabilities {
	effective := make([]domain.Permission, 0, len(domain.AllPermissions))
	for _, p := range domain.AllPermissions {
		if a.HasPermission(actor, p) {
			effective = append(effective, p)
		}
	}
	return Capabilities{
		CanViewBookings:   a.CanViewBookings(actor),
		CanViewAll:        a.HasPermission(actor, domain.PermViewAllBookings),
		CanManageBookings: a.CanManageBookings(actor),
		CanStart:          a.HasPermission(actor, domain.PermStartBooking),
		CanComplete:       a.HasPermission(actor, domain.PermCompleteBooking),
		CanCancel:         a.HasPermission(actor, domain.PermCancelBooking),
		Permissions:       effective,
	}
}

// HasPermission проверка через Default
func HasPermission(actor domain.Actor, p domain.Permission) bool {
	return Default.HasPermission(actor, p)
}

// HasAny проверка через Default
func HasAny(actor domain.Actor, perms ...domain.Permission) bool {
	return Default.HasAny(actor, perms...)
}

// HasAll проверка через Default
func HasAll(actor domain.Actor, perms ...domain.Permission) bool {
	return Default.HasAll(actor, perms...)
}

// CanManageBookings проверка через Default
func CanManageBookings(actor domain.Actor) bool {
	return Default.CanManageBookings(actor)
}

// CanViewBookings проверка через Default
func CanViewBookings(actor domain.Actor) bool {
	return Default.CanViewBookings(actor)
}
