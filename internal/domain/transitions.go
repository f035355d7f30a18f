package domain

// Transition разрешённый переход статуса бронирования
// Для перехода достаточно любого из прав AnyOf
type Transition struct {
	From  BookingStatus
	To    BookingStatus
	AnyOf []Permission
}

// manageBookings набор прав, любого из которых достаточно для управления бронированиями
var manageBookings = []Permission{PermStartBooking, PermCompleteBooking, PermCancelBooking}

// transitions таблица переходов конечного автомата бронирования
// Из терминальных статусов переходов нет
var transitions = []Transition{
	{From: StatusPending, To: StatusConfirmed, AnyOf: manageBookings},
	{From: StatusConfirmed, To: StatusInProgress, AnyOf: []Permission{PermStartBooking}},
	{From: StatusInProgress, To: StatusCompleted, AnyOf: []Permission{PermCompleteBooking}},
	{From: StatusPending, To: StatusCancelled, AnyOf: []Permission{PermCancelBooking}},
	{From: StatusConfirmed, To: StatusCancelled, AnyOf: []Permission{PermCancelBooking}},
	{From: StatusInProgress, To: StatusCancelled, AnyOf: []Permission{PermCancelBooking}},
	{From: StatusConfirmed, To: StatusNoShow, AnyOf: []Permission{PermCancelBooking}},
	{From: StatusInProgress, To: StatusNoShow, AnyOf: []Permission{PermCancelBooking}},
}

// LookupTransition возвращает правило перехода, если он разрешён автоматом
func LookupTransition(from, to BookingStatus) (Transition, bool) {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return t, true
		}
	}
	return Transition{}, false
}

// TransitionsFrom возвращает все переходы из статуса в порядке таблицы
func TransitionsFrom(from BookingStatus) []Transition {
	result := make([]Transition, 0, 3)
	for _, t := range transitions {
		if t.From == from {
			result = append(result, t)
		}
	}
	return result
}
