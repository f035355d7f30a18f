package domain

import "fmt"

// Permission право из фиксированного каталога
// Каталог неизменяем, меняется только набор прав у конкретного сотрудника
type Permission string

const (
	PermViewOwnBookings   Permission = "view_own_bookings"
	PermViewAllBookings   Permission = "view_all_bookings"
	PermStartBooking      Permission = "start_booking"
	PermCompleteBooking   Permission = "complete_booking"
	PermCancelBooking     Permission = "cancel_booking"
	PermManageServices    Permission = "manage_services"
	PermManageEmployees   Permission = "manage_employees"
	PermManageSettings    Permission = "manage_settings"
	PermManageInventory   Permission = "manage_inventory"
	PermViewAnalytics     Permission = "view_analytics"
	PermUseAIAgent        Permission = "use_ai_agent"
	PermSendNotifications Permission = "send_notifications"
)

// AllPermissions полный каталог прав в фиксированном порядке
// Порядок задаёт номер бита в PermissionSet, менять его нельзя
var AllPermissions = []Permission{
	PermViewOwnBookings,
	PermViewAllBookings,
	PermStartBooking,
	PermCompleteBooking,
	PermCancelBooking,
	PermManageServices,
	PermManageEmployees,
	PermManageSettings,
	PermManageInventory,
	PermViewAnalytics,
	PermUseAIAgent,
	PermSendNotifications,
}

var permissionBits = func() map[Permission]uint16 {
	bits := make(map[Permission]uint16, len(AllPermissions))
	for i, p := range AllPermissions {
		bits[p] = 1 << uint(i)
	}
	return bits
}()

// IsValid возвращает true, если право есть в каталоге
func (p Permission) IsValid() bool {
	_, ok := permissionBits[p]
	return ok
}

// ParsePermission конвертирует строку в Permission с валидацией
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown permission %q", ErrValidation, s)
	}
	return p, nil
}

// PermissionSet неизменяемый набор прав
type PermissionSet struct {
	bits uint16
}

// NewPermissionSet создает набор из перечисленных прав, неизвестные права игнорируются
func NewPermissionSet(perms ...Permission) PermissionSet {
	return PermissionSet{}.With(perms...)
}

// With возвращает новый набор с добавленными правами
func (s PermissionSet) With(perms ...Permission) PermissionSet {
	bits := s.bits
	for _, p := range perms {
		bits |= permissionBits[p]
	}
	return PermissionSet{bits: bits}
}

// Has возвращает true, если право входит в набор
func (s PermissionSet) Has(p Permission) bool {
	bit, ok := permissionBits[p]
	return ok && s.bits&bit != 0
}

// IsEmpty возвращает true для пустого набора
func (s PermissionSet) IsEmpty() bool {
	return s.bits == 0
}

// List возвращает права набора в порядке каталога
func (s PermissionSet) List() []Permission {
	result := make([]Permission, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		if s.Has(p) {
			result = append(result, p)
		}
	}
	return result
}
