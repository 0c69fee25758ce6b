package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted status. There is no transition order
// between them; any status may follow any other.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
