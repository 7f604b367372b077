package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// TaskForm is the create-task submission. It cannot mark a task done.
type TaskForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description"`
	Status      string `form:"status" json:"status" validate:"omitempty,create_task_status"`
	DueDate     string `form:"due_date" json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Recurrence  string `form:"recurrence" json:"recurrence" validate:"omitempty,recurrence"`
}

// Validate builds an unsaved task. The caller sets the equipment.
func (f *TaskForm) Validate() (models.Task, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Status = strings.TrimSpace(f.Status)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Recurrence = strings.TrimSpace(f.Recurrence)

	if err := check(f); err != nil {
		return models.Task{}, err
	}

	status := models.TaskStatus(f.Status)
	if status == "" {
		status = models.TaskTodo
	}
	return models.Task{
		Title:       f.Title,
		Description: f.Description,
		Status:      status,
		DueDate:     parseDate(f.DueDate),
		Recurrence:  models.Recurrence(f.Recurrence),
	}, nil
}

// TaskEditForm is the edit-task submission. Unlike TaskForm it can move the
// task to other equipment and set the completed flag.
type TaskEditForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `form:"status" json:"status" validate:"required,task_status"`
	Equipment   Scalar `form:"equipment" json:"equipment" validate:"required,number"`
	Completed   Scalar `form:"completed" json:"completed"`
	Recurrence  string `form:"recurrence" json:"recurrence" validate:"omitempty,recurrence"`
}

// TaskEdit is a validated TaskEditForm.
type TaskEdit struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      models.TaskStatus
	EquipmentID uint
	Completed   bool
	Recurrence  models.Recurrence
}

// NewTaskEditForm prefills the edit form from a stored task.
func NewTaskEditForm(task *models.Task) TaskEditForm {
	form := TaskEditForm{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Equipment:   Scalar(strconv.FormatUint(uint64(task.EquipmentID), 10)),
		Recurrence:  string(task.Recurrence),
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.Format(DateLayout)
	}
	if task.Completed {
		form.Completed = "on"
	}
	return form
}

func (f *TaskEditForm) Validate() (TaskEdit, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Status = strings.TrimSpace(f.Status)
	f.Equipment = Scalar(strings.TrimSpace(string(f.Equipment)))
	f.Recurrence = strings.TrimSpace(f.Recurrence)

	if err := check(f); err != nil {
		return TaskEdit{}, err
	}

	equipmentID, err := strconv.ParseUint(string(f.Equipment), 10, 32)
	if err != nil || equipmentID == 0 {
		return TaskEdit{}, ValidationErrors{"equipment": "Select a valid choice."}
	}

	return TaskEdit{
		Title:       f.Title,
		Description: f.Description,
		DueDate:     parseDate(f.DueDate),
		Status:      models.TaskStatus(f.Status),
		EquipmentID: uint(equipmentID),
		Completed:   parseCheckbox(string(f.Completed)),
		Recurrence:  models.Recurrence(f.Recurrence),
	}, nil
}

// Apply copies the edit onto task and reconciles status with the completed
// flag. A recurring task keeps its schedule anchor unless the due date moves;
// one that stops recurring loses it.
func (e TaskEdit) Apply(task *models.Task, today time.Time) {
	wasRecurring := task.IsRecurring()
	dueChanged := !sameDate(task.DueDate, e.DueDate)

	task.Title = e.Title
	task.Description = e.Description
	task.DueDate = e.DueDate
	task.Status = e.Status
	task.Completed = e.Completed
	task.Recurrence = e.Recurrence
	if task.EquipmentID != e.EquipmentID {
		task.EquipmentID = e.EquipmentID
		task.Equipment = nil
	}
	task.Reconcile()

	switch {
	case !task.IsRecurring() || !wasRecurring || task.NextDueDate == nil:
		task.ScheduleRecurrence(today)
	case dueChanged && task.DueDate != nil:
		// A new due date re-anchors the schedule.
		task.ScheduleRecurrence(today)
	}
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
