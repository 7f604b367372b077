package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/equipment-tracker/db"
	"github.com/sidhant-sriv/equipment-tracker/forms"
	"github.com/sidhant-sriv/equipment-tracker/middleware"
	"github.com/sidhant-sriv/equipment-tracker/models"
	"github.com/sidhant-sriv/equipment-tracker/render"
)

// TaskRoutes sets up the task and kanban routes.
func TaskRoutes(router *gin.Engine, h *Handler) {
	router.GET("/kanban/", h.Kanban())
	router.GET("/task/:id/", h.GetTask())
	router.GET("/task/:id/edit/", h.EditTaskForm())
	router.POST("/task/:id/edit/", h.EditTask())
	router.POST("/task/:id/toggle/", h.ToggleTask())
	router.POST("/task/:id/status/", h.SetTaskStatus())
	router.POST("/task/:id/delete/", h.DeleteTask())
}

// taskListView is the refreshed task list for one piece of equipment.
func (h *Handler) taskListView(ctx context.Context, equipment *models.Equipment, equipmentID uint) (render.View, error) {
	tasks, err := h.Store.Tasks.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return render.View{}, err
	}
	return render.View{
		Fragment: fragmentTaskList,
		Data:     TaskListData{Equipment: equipment, Tasks: tasks, Today: h.today()},
	}, nil
}

// CreateTask adds a task to an item and returns the refreshed task list.
func (h *Handler) CreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		equipment, err := h.Store.Equipment.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		var form forms.TaskForm
		if err := bindForm(c, &form); err != nil {
			abortWithError(c, err)
			return
		}
		task, err := form.Validate()
		if err != nil {
			abortWithError(c, err)
			return
		}
		task.EquipmentID = equipment.ID
		task.ScheduleRecurrence(h.today())

		if err := h.Store.Tasks.Create(ctx, &task); err != nil {
			abortWithError(c, err)
			return
		}

		view, err := h.taskListView(ctx, equipment, equipment.ID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		render.Respond(c, http.StatusOK, view)
	}
}

// ToggleTask flips a task's completed flag.
func (h *Handler) ToggleTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		task, err := h.Store.Tasks.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		task.Toggle()
		if err := h.Store.Tasks.Save(ctx, task); err != nil {
			abortWithError(c, err)
			return
		}

		view, err := h.taskListView(ctx, task.Equipment, task.EquipmentID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		render.Respond(c, http.StatusOK, view)
	}
}

// SetTaskStatus moves a task to another kanban column. The status comes from
// the form body, or the query string when the body has none.
func (h *Handler) SetTaskStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		task, err := h.Store.Tasks.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		status, found := c.GetPostForm("status")
		if !found {
			status = c.Query("status")
		}
		if err := task.SetStatus(models.TaskStatus(strings.TrimSpace(status))); err != nil {
			abortWithError(c, err)
			return
		}
		if err := h.Store.Tasks.Save(ctx, task); err != nil {
			abortWithError(c, err)
			return
		}

		c.String(http.StatusOK, "Updated")
	}
}

// GetTask renders a task as a page, or as the detail fragment for htmx.
func (h *Handler) GetTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		task, err := h.Store.Tasks.GetByID(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		render.Respond(c, http.StatusOK, render.View{
			Page:     pageTaskDetail,
			Fragment: fragmentTaskView,
			Data:     TaskDetailData{Task: task, Today: h.today()},
		})
	}
}

// EditTaskForm renders the edit form prefilled from the stored task.
func (h *Handler) EditTaskForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		task, err := h.Store.Tasks.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		h.respondTaskForm(c, http.StatusOK, task, forms.NewTaskEditForm(task), nil)
	}
}

func (h *Handler) respondTaskForm(c *gin.Context, status int, task *models.Task, form forms.TaskEditForm, verrs forms.ValidationErrors) {
	equipment, err := h.Store.Equipment.List(c.Request.Context(), db.EquipmentFilter{})
	if err != nil {
		abortWithError(c, err)
		return
	}
	render.Respond(c, status, render.View{
		Fragment: fragmentTaskForm,
		Data: TaskFormData{
			Task:          task,
			Form:          form,
			Errors:        verrs,
			EquipmentList: equipment,
		},
	})
}

// EditTask applies the edit form. When status and completed disagree the
// status wins.
func (h *Handler) EditTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		task, err := h.Store.Tasks.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		var form forms.TaskEditForm
		err = bindForm(c, &form)
		var edit forms.TaskEdit
		if err == nil {
			edit, err = form.Validate()
		}
		var equipment *models.Equipment
		if err == nil {
			equipment, err = h.Store.Equipment.GetByID(ctx, edit.EquipmentID)
			if errors.Is(err, db.ErrNotFound) {
				err = forms.ValidationErrors{"equipment": "Select a valid choice. That choice is not one of the available choices."}
			}
		}

		var verrs forms.ValidationErrors
		if errors.As(err, &verrs) {
			h.respondTaskForm(c, http.StatusBadRequest, task, form, verrs)
			return
		}
		if err != nil {
			abortWithError(c, err)
			return
		}

		edit.Apply(task, h.today())
		if err := h.Store.Tasks.Save(ctx, task); err != nil {
			abortWithError(c, err)
			return
		}
		task.Equipment = equipment

		render.Respond(c, http.StatusOK, render.View{
			Fragment: fragmentTaskView,
			Data:     TaskDetailData{Task: task, Today: h.today()},
		})
	}
}

// DeleteTask removes a task. htmx callers get the refreshed task list, or a
// client-side redirect when they pass ?redirect=; plain form posts are
// redirected to the equipment page.
func (h *Handler) DeleteTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		task, err := h.Store.Tasks.GetByID(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := h.Store.Tasks.Delete(ctx, task.ID); err != nil {
			abortWithError(c, err)
			return
		}
		log.Printf("Deleted task %d from equipment %d", task.ID, task.EquipmentID)

		if !middleware.IsFragment(c) {
			c.Redirect(http.StatusFound, equipmentURL(task.EquipmentID))
			return
		}

		if target := c.Query("redirect"); target != "" {
			if !isLocalPath(target) {
				target = equipmentURL(task.EquipmentID)
			}
			c.Header("HX-Redirect", target)
			c.String(http.StatusOK, "")
			return
		}

		view, err := h.taskListView(ctx, task.Equipment, task.EquipmentID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		render.Respond(c, http.StatusOK, view)
	}
}

// isLocalPath accepts same-site absolute paths only.
func isLocalPath(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.Contains(target, `\`)
}

// Kanban renders every task bucketed by status, soonest due first.
func (h *Handler) Kanban() gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := h.Store.Tasks.ListAll(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}

		render.Respond(c, http.StatusOK, render.View{
			Page: pageKanban,
			Data: partitionKanban(tasks, h.today()),
		})
	}
}
