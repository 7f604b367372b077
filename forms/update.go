package forms

import (
	"strings"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

// UpdateForm logs a note against a piece of equipment. Timestamp is optional
// and defaults to now when the update is stored.
type UpdateForm struct {
	Content   string `form:"content" json:"content" validate:"required"`
	Timestamp string `form:"timestamp" json:"timestamp" validate:"omitempty,timestamp"`
}

func (f *UpdateForm) Validate() (models.Update, error) {
	f.Content = strings.TrimSpace(f.Content)
	f.Timestamp = strings.TrimSpace(f.Timestamp)

	if err := check(f); err != nil {
		return models.Update{}, err
	}

	update := models.Update{Content: f.Content}
	if f.Timestamp != "" {
		// Already checked by the timestamp rule.
		update.Timestamp, _ = parseTimestamp(f.Timestamp)
	}
	return update, nil
}
