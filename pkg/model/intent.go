package model

// IntentName is one of the fixed function names the oracle may return.
type IntentName string

const (
	IntentCreateCalendarEvent IntentName = "createCalendarEvent"
	IntentCreateRecurringTask IntentName = "createRecurringTask"
	IntentPayBill             IntentName = "payBill"
	IntentCreateGoal          IntentName = "createGoal"
)

// Known reports whether the name is part of the supported vocabulary.
func (n IntentName) Known() bool {
	switch n {
	case IntentCreateCalendarEvent, IntentCreateRecurringTask, IntentPayBill, IntentCreateGoal:
		return true
	default:
		return false
	}
}

// Intent is a structured request extracted from free text by the oracle.
// It is consumed exactly once by the confirmation coordinator and never
// persisted. ID is the oracle's correlation token for the function call.
type Intent struct {
	Name IntentName
	ID   string
	Args map[string]any
}
