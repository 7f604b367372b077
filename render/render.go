// Package render turns handler results into responses. Handlers describe
// what to show with a View; Respond decides between a full page, an htmx
// fragment and JSON.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/sidhant-sriv/equipment-tracker/middleware"
	"github.com/sidhant-sriv/equipment-tracker/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// View names the templates that can show Data.
type View struct {
	// Page is the full-page template. Empty means the view only exists as a
	// fragment.
	Page string
	// Fragment is used for htmx requests. Empty means Page is always used.
	Fragment string
	Data     any
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Install registers the templates on router.
func Install(router *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

// Respond writes view with status in the shape the client asked for.
func Respond(c *gin.Context, status int, view View) {
	if c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		c.JSON(status, view.Data)
		return
	}

	name := view.Page
	if view.Fragment != "" && (name == "" || middleware.IsFragment(c)) {
		name = view.Fragment
	}
	c.HTML(status, name, view.Data)
}

var funcs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"overdue": func(task models.Task, today time.Time) bool {
		return task.Overdue(today)
	},
	"equipmentStatuses": func() []models.EquipmentStatus { return models.EquipmentStatuses },
	"taskStatuses":      func() []models.TaskStatus { return models.TaskStatuses },
	"recurrences":       func() []models.Recurrence { return models.Recurrences },
}
