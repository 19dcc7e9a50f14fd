package model

// Priority is the maintenance priority label derived from a risk score.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// PriorityFor maps a risk score to its maintenance priority.
func PriorityFor(riskScore int) Priority {
	switch {
	case riskScore >= 75:
		return PriorityUrgent
	case riskScore >= 60:
		return PriorityHigh
	case riskScore >= 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
