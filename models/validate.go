package models

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

var monthDate = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
})

// Validate checks the fields every stored project must carry.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, notBlank),
		validation.Field(&p.Description, validation.Required, notBlank),
		validation.Field(&p.Category, validation.Required, notBlank),
		validation.Field(&p.Date, validation.Match(monthDate).Error("must be formatted as YYYY-MM")),
		validation.Field(&p.Media),
	)
}

func (m MediaItem) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.Required),
	)
}

// ValidateProject runs Validate and converts the first failing field into an
// ApiErr. Fields are reported in name order so results are stable.
func ValidateProject(p *Project) error {
	err := p.Validate()
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewValidationError("project", err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	fieldErr := fieldErrs[field]
	var ruleErr validation.Error
	if errors.As(fieldErr, &ruleErr) && ruleErr.Code() == validation.ErrRequired.Code() {
		return errs.NewMissingRequiredFieldError(field)
	}
	return errs.NewInvalidFieldError(field, fieldErr.Error())
}
