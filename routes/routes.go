package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/sidhant-sriv/equipment-tracker/db"
	"github.com/sidhant-sriv/equipment-tracker/forms"
	"github.com/sidhant-sriv/equipment-tracker/middleware"
	"github.com/sidhant-sriv/equipment-tracker/models"
	"github.com/sidhant-sriv/equipment-tracker/render"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	Store *db.Store
	// Now is the clock used for "today"; defaults to time.Now.
	Now func() time.Time
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return models.Date(now())
}

// NewRouter builds the engine with middleware, templates and every route.
func NewRouter(h *Handler) (*gin.Engine, error) {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.Fragment())

	if err := render.Install(router); err != nil {
		return nil, err
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", Landing())

	EquipmentRoutes(router, h)
	TaskRoutes(router, h)
	return router, nil
}

// Landing serves the static welcome page.
func Landing() gin.HandlerFunc {
	return func(c *gin.Context) {
		render.Respond(c, http.StatusOK, render.View{Page: pageLanding})
	}
}

// parseID reads a positive numeric path parameter. Anything else can never
// name a row, so callers answer 404.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusNotFound, "Not Found", nil)
		return 0, false
	}
	return uint(id), true
}

// abortWithError maps an error from the store, the forms or the state
// machine onto a response.
func abortWithError(c *gin.Context, err error) {
	var verrs forms.ValidationErrors
	switch {
	case errors.Is(err, db.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not Found", nil)
	case errors.Is(err, models.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "Invalid Status", nil)
	case errors.As(err, &verrs):
		respondError(c, http.StatusBadRequest, "Error", verrs)
	default:
		log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error", nil)
	}
}

func respondError(c *gin.Context, status int, msg string, fields forms.ValidationErrors) {
	if c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		body := gin.H{"error": msg}
		if len(fields) > 0 {
			body["fields"] = fields
		}
		c.AbortWithStatusJSON(status, body)
		return
	}
	c.Abort()
	c.String(status, msg)
}

// bindForm binds the request body into form. A body that cannot be decoded
// at all is reported like any other invalid submission.
func bindForm(c *gin.Context, form any) error {
	if err := c.ShouldBind(form); err != nil {
		return forms.ValidationErrors{"__all__": fmt.Sprintf("Malformed submission: %v", err)}
	}
	return nil
}
