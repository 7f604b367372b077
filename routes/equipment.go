package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/equipment-tracker/db"
	"github.com/sidhant-sriv/equipment-tracker/forms"
	"github.com/sidhant-sriv/equipment-tracker/models"
	"github.com/sidhant-sriv/equipment-tracker/render"
)

// EquipmentRoutes sets up the dashboard and per-equipment routes.
func EquipmentRoutes(router *gin.Engine, h *Handler) {
	router.GET("/equip/", h.ListEquipment())
	router.GET("/equipment/add/", h.AddEquipmentForm())
	router.POST("/equipment/add/", h.CreateEquipment())
	router.GET("/equipment/:id/", h.GetEquipment())
	router.POST("/equipment/:id/delete/", h.DeleteEquipment())
	router.POST("/equipment/:id/add_task/", h.CreateTask())
	router.POST("/equipment/:id/add_update/", h.CreateUpdate())
}

func equipmentURL(id uint) string {
	return fmt.Sprintf("/equipment/%d/", id)
}

// ListEquipment renders the dashboard, newest equipment first.
func (h *Handler) ListEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := db.EquipmentFilter{Query: strings.TrimSpace(c.Query("q"))}
		// Unknown status filters are ignored rather than rejected
		if status := models.EquipmentStatus(c.Query("status")); status.Valid() {
			filter.Status = status
		}

		equipment, err := h.Store.Equipment.List(c.Request.Context(), filter)
		if err != nil {
			abortWithError(c, err)
			return
		}

		render.Respond(c, http.StatusOK, render.View{
			Page: pageDashboard,
			Data: DashboardData{EquipmentList: equipment, Filter: filter},
		})
	}
}

// AddEquipmentForm renders an empty equipment form.
func (h *Handler) AddEquipmentForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		render.Respond(c, http.StatusOK, render.View{
			Page: pageEquipmentForm,
			Data: EquipmentFormData{
				Title: "Add Equipment",
				Form:  forms.EquipmentForm{Status: string(models.EquipmentActive)},
			},
		})
	}
}

// CreateEquipment handles the add-equipment form and redirects to the new
// item's detail page.
func (h *Handler) CreateEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.EquipmentForm
		err := bindForm(c, &form)
		var equipment models.Equipment
		if err == nil {
			equipment, err = form.Validate()
		}

		var verrs forms.ValidationErrors
		if errors.As(err, &verrs) {
			render.Respond(c, http.StatusBadRequest, render.View{
				Page: pageEquipmentForm,
				Data: EquipmentFormData{Title: "Add Equipment", Form: form, Errors: verrs},
			})
			return
		}
		if err != nil {
			abortWithError(c, err)
			return
		}

		// Create the equipment in database
		if err := h.Store.Equipment.Create(c.Request.Context(), &equipment); err != nil {
			abortWithError(c, err)
			return
		}
		log.Printf("Created equipment %d (%s)", equipment.ID, equipment.Name)

		c.Redirect(http.StatusFound, equipmentURL(equipment.ID))
	}
}

// GetEquipment renders one item with its tasks and update log.
func (h *Handler) GetEquipment() gin.HandlerFunc {
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
		tasks, err := h.Store.Tasks.ListByEquipment(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		updates, err := h.Store.Updates.ListByEquipment(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		render.Respond(c, http.StatusOK, render.View{
			Page: pageEquipmentDetail,
			Data: EquipmentDetailData{
				Equipment: equipment,
				Tasks:     tasks,
				Updates:   updates,
				TaskForm:  forms.TaskForm{Status: string(models.TaskTodo)},
				Today:     h.today(),
			},
		})
	}
}

// DeleteEquipment removes an item with all of its tasks and updates.
func (h *Handler) DeleteEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		if err := h.Store.Equipment.Delete(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		log.Printf("Deleted equipment %d", id)

		c.Redirect(http.StatusFound, "/equip/")
	}
}

// CreateUpdate logs an update against an item and returns the refreshed log.
func (h *Handler) CreateUpdate() gin.HandlerFunc {
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

		var form forms.UpdateForm
		if err := bindForm(c, &form); err != nil {
			abortWithError(c, err)
			return
		}
		update, err := form.Validate()
		if err != nil {
			abortWithError(c, err)
			return
		}
		update.EquipmentID = equipment.ID

		if err := h.Store.Updates.Create(ctx, &update); err != nil {
			abortWithError(c, err)
			return
		}

		updates, err := h.Store.Updates.ListByEquipment(ctx, equipment.ID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		render.Respond(c, http.StatusOK, render.View{
			Fragment: fragmentUpdateList,
			Data:     UpdateListData{Updates: updates},
		})
	}
}
