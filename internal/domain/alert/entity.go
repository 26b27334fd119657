package alert

import "time"

// AlertType represents the type of alert
type AlertType string

const (
	TypeDailyObjective   AlertType = "daily_objective"
	TypeMonthlyObjective AlertType = "monthly_objective"
	TypeGoalCarryOver    AlertType = "goal_carryover"
)

// AllAlertTypes returns all available alert types
func AllAlertTypes() []AlertType {
	return []AlertType{
		TypeDailyObjective,
		TypeMonthlyObjective,
		TypeGoalCarryOver,
	}
}

func (t AlertType) IsValid() bool {
	for _, v := range AllAlertTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// Alert is a message addressed to one employee
type Alert struct {
	ID         string
	EmployeeID string
	Type       AlertType
	Message    string
	Data       map[string]interface{}
	IsRead     bool
	SentAt     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// EventName is the live channel an employee's alerts are pushed on.
func EventName(employeeID string) string {
	return "alert_" + employeeID
}
