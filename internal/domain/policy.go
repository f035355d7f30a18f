package domain

// Policy настройки компании, влияющие на планирование
// Передаётся явно в каждый вызов ядра, глобального состояния нет
type Policy struct {
	ReschedulingEnabled   bool
	AssignmentEnabled     bool
	MaxAdvanceBookingDays int // 0 = ограничение берётся только из услуги
}

// DefaultPolicy политика по умолчанию: всё включено, без дополнительных ограничений
func DefaultPolicy() Policy {
	return Policy{
		ReschedulingEnabled:   true,
		AssignmentEnabled:     true,
		MaxAdvanceBookingDays: 0,
	}
}

// AdvanceBookingDays возвращает горизонт бронирования для услуги с учётом политики
func (p Policy) AdvanceBookingDays(service *Service) int {
	days := service.AdvanceBookingDays
	if p.MaxAdvanceBookingDays > 0 && p.MaxAdvanceBookingDays < days {
		days = p.MaxAdvanceBookingDays
	}
	return days
}
