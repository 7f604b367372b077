// Package forms validates submitted HTML forms and turns them into model
// values. Every Validate method either returns a usable value or a
// ValidationErrors keyed by form field name.
package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sidhant-sriv/equipment-tracker/models"
)

const (
	DateLayout          = "2006-01-02"
	DateTimeLocalLayout = "2006-01-02T15:04"
)

// ValidationErrors maps a form field to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Scalar is a form value that JSON clients may also send as a number or a
// boolean. False and null read as an empty field, like an unticked checkbox.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = Scalar(v)
	case json.Number:
		*s = Scalar(v.String())
	case bool:
		*s = ""
		if v {
			*s = "true"
		}
	default:
		return fmt.Errorf("cannot use %s as a form value", data)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the submitted field name rather than the Go name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "equipment_status", func(fl validator.FieldLevel) bool {
		return models.EquipmentStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "task_status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "create_task_status", func(fl validator.FieldLevel) bool {
		status := models.TaskStatus(fl.Field().String())
		return status.Valid() && status != models.TaskDone
	})
	mustRegister(v, "recurrence", func(fl validator.FieldLevel) bool {
		return models.Recurrence(fl.Field().String()).Valid()
	})
	mustRegister(v, "timestamp", func(fl validator.FieldLevel) bool {
		_, err := parseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// check runs struct validation and flattens the result.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	result := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := result[fe.Field()]; !seen {
			result[fe.Field()] = message(fe)
		}
	}
	return result
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "datetime":
		return "Enter a valid date."
	case "timestamp":
		return "Enter a valid date/time."
	case "number", "gt":
		return "Select a valid choice."
	case "equipment_status", "task_status", "create_task_status", "recurrence":
		return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", fe.Value())
	}
	return "Enter a valid value."
}

// parseDate returns nil for an empty string. Callers validate first.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil
	}
	return &d
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, DateTimeLocalLayout, DateLayout} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// parseCheckbox accepts the values browsers and API clients send for a
// ticked checkbox.
func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
