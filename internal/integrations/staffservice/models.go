package staffservice

// Employee модель сотрудника из StaffService
type Employee struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Permissions  []string     `json:"permissions"`
	IsActive     bool         `json:"is_active"`
	WorkingHours WorkingHours `json:"working_hours"`
}

// WorkingHours расписание сотрудника на неделю
type WorkingHours struct {
	Monday    *DaySchedule `json:"monday"`
	Tuesday   *DaySchedule `json:"tuesday"`
	Wednesday *DaySchedule `json:"wednesday"`
	Thursday  *DaySchedule `json:"thursday"`
	Friday    *DaySchedule `json:"friday"`
	Saturday  *DaySchedule `json:"saturday"`
	Sunday    *DaySchedule `json:"sunday"`
}

// DaySchedule расписание на день
type DaySchedule struct {
	IsAvailable bool          `json:"is_available"`
	Start       *string       `json:"start,omitempty"` // HH:MM
	End         *string       `json:"end,omitempty"`   // HH:MM
	Breaks      []BreakPeriod `json:"breaks,omitempty"`
}

// BreakPeriod перерыв
type BreakPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
