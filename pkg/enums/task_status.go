package enums

import "fmt"

// TaskStatus describes where a task sits in its lifecycle. Transitions are
// unconstrained: edits may move a task between any two statuses.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is a known lifecycle state.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts a raw string into a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, error) {
	s := TaskStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid task status %q", value)
	}
	return s, nil
}
