package routes

import (
	"time"

	"github.com/sidhant-sriv/equipment-tracker/db"
	"github.com/sidhant-sriv/equipment-tracker/forms"
	"github.com/sidhant-sriv/equipment-tracker/models"
)

// Template names. Full pages and fragments share data types.
const (
	pageLanding         = "landing"
	pageDashboard       = "dashboard"
	pageEquipmentForm   = "equipment_form"
	pageEquipmentDetail = "equipment_detail"
	pageTaskDetail      = "task_detail"
	pageKanban          = "kanban"

	fragmentTaskList   = "task_list"
	fragmentUpdateList = "update_list"
	fragmentTaskView   = "task_detail_view"
	fragmentTaskForm   = "task_form"
)

type DashboardData struct {
	EquipmentList []models.Equipment `json:"equipment_list"`
	Filter        db.EquipmentFilter `json:"filter"`
}

type EquipmentFormData struct {
	Title  string                 `json:"title"`
	Form   forms.EquipmentForm    `json:"form"`
	Errors forms.ValidationErrors `json:"errors,omitempty"`
}

type EquipmentDetailData struct {
	Equipment  *models.Equipment `json:"equipment"`
	Tasks      []models.Task     `json:"tasks"`
	Updates    []models.Update   `json:"updates"`
	TaskForm   forms.TaskForm    `json:"-"`
	UpdateForm forms.UpdateForm  `json:"-"`
	Today      time.Time         `json:"today"`
}

type TaskListData struct {
	Equipment *models.Equipment `json:"equipment"`
	Tasks     []models.Task     `json:"tasks"`
	Today     time.Time         `json:"today"`
}

type UpdateListData struct {
	Updates []models.Update `json:"updates"`
}

type TaskDetailData struct {
	Task  *models.Task `json:"task"`
	Today time.Time    `json:"today"`
}

type TaskFormData struct {
	Task          *models.Task           `json:"task"`
	Form          forms.TaskEditForm     `json:"form"`
	Errors        forms.ValidationErrors `json:"errors,omitempty"`
	EquipmentList []models.Equipment     `json:"equipment_list"`
}

// KanbanData holds every task exactly once, in the column of its status.
type KanbanData struct {
	Icebox     []models.Task `json:"icebox_tasks"`
	Todo       []models.Task `json:"todo_tasks"`
	InProgress []models.Task `json:"in_progress_tasks"`
	Done       []models.Task `json:"done_tasks"`
	Today      time.Time     `json:"today"`
}

type KanbanColumn struct {
	Status models.TaskStatus
	Tasks  []models.Task
}

// Columns lists the buckets in board order.
func (k KanbanData) Columns() []KanbanColumn {
	return []KanbanColumn{
		{Status: models.TaskIcebox, Tasks: k.Icebox},
		{Status: models.TaskTodo, Tasks: k.Todo},
		{Status: models.TaskInProgress, Tasks: k.InProgress},
		{Status: models.TaskDone, Tasks: k.Done},
	}
}

// partitionKanban keeps the order of tasks within each bucket.
func partitionKanban(tasks []models.Task, today time.Time) KanbanData {
	board := KanbanData{
		Icebox:     []models.Task{},
		Todo:       []models.Task{},
		InProgress: []models.Task{},
		Done:       []models.Task{},
		Today:      today,
	}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskIcebox:
			board.Icebox = append(board.Icebox, task)
		case models.TaskTodo:
			board.Todo = append(board.Todo, task)
		case models.TaskInProgress:
			board.InProgress = append(board.InProgress, task)
		case models.TaskDone:
			board.Done = append(board.Done, task)
		}
	}
	return board
}
