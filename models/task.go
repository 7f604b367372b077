package models

import (
	"errors"
	"time"
)

// ErrInvalidStatus is returned when a task is moved to a status outside the
// kanban vocabulary.
var ErrInvalidStatus = errors.New("invalid task status")

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	TaskIcebox     TaskStatus = "icebox"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists the kanban columns in board order.
var TaskStatuses = []TaskStatus{TaskIcebox, TaskTodo, TaskInProgress, TaskDone}

var taskStatusLabels = map[TaskStatus]string{
	TaskIcebox:     "Icebox",
	TaskTodo:       "To Do",
	TaskInProgress: "In Progress",
	TaskDone:       "Done",
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

func (s TaskStatus) Label() string {
	if label, ok := taskStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Task is a unit of maintenance work attached to a piece of equipment.
//
// Status and Completed are kept in lockstep: a done task is always
// completed. The methods below are the only places that move either field.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EquipmentID uint       `gorm:"not null;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"constraint:OnDelete:CASCADE" json:"equipment,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date;index" json:"due_date,omitempty"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Status      TaskStatus `gorm:"size:20;not null;default:todo;index" json:"status"`
	Recurrence  Recurrence `gorm:"size:20;not null;default:''" json:"recurrence,omitempty"`
	NextDueDate *time.Time `gorm:"type:date" json:"next_due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetStatus moves the task to status and syncs the completed flag. An
// unknown status leaves the task untouched.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.Status = status
	t.Completed = status == TaskDone
	return nil
}

// Toggle flips the completed flag and maps it back onto a status. A task
// that was icebox or in_progress comes back as todo.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = TaskDone
	} else {
		t.Status = TaskTodo
	}
}

// Reconcile resolves a conflicting status/completed pair submitted through
// the edit form. The status wins.
func (t *Task) Reconcile() {
	switch {
	case t.Status == TaskDone:
		t.Completed = true
	case (t.Status == TaskTodo || t.Status == TaskInProgress) && t.Completed:
		t.Completed = false
	}
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence != RecurrenceNone
}

// ScheduleRecurrence seeds NextDueDate for a recurring task from its due
// date, falling back to today.
func (t *Task) ScheduleRecurrence(today time.Time) {
	if !t.IsRecurring() {
		t.NextDueDate = nil
		return
	}
	next := today
	if t.DueDate != nil {
		next = *t.DueDate
	}
	next = Date(next)
	t.NextDueDate = &next
}

// Reopen rolls a completed recurring task forward to its next occurrence,
// stepping from the later of NextDueDate and DueDate so the new due date
// never lands before the one just completed. It reports false for tasks
// that are not recurring or not completed.
func (t *Task) Reopen(today time.Time) bool {
	if !t.IsRecurring() || !t.Completed {
		return false
	}
	base := Date(today)
	if t.NextDueDate != nil {
		base = *t.NextDueDate
	}
	if t.DueDate != nil && t.DueDate.After(base) {
		base = Date(*t.DueDate)
	}
	next := t.Recurrence.Advance(base)
	due := next
	t.NextDueDate = &next
	t.DueDate = &due
	t.Status = TaskTodo
	t.Completed = false
	return true
}

// Overdue reports whether an open task's due date is before today.
func (t *Task) Overdue(today time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(Date(today))
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
