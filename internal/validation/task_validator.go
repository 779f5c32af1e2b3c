package validation

import (
	"fmt"

	"task-list/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithValidator creates a task validator sharing v's limits
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	tv.checkTitle(validationError, title)
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("title")
		return
	}
	if !tv.validator.IsValidTitleLength(trimmed) {
		ve.AddInvalidLengthError("title", trimmed, 1, tv.validator.TitleMaxLength())
	}
	if !tv.validator.IsSingleLine(trimmed) {
		ve.AddInvalidCharacterError("title", trimmed)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	trimmed := tv.validator.TrimAndValidateString(description)

	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("description")
		return
	}
	if !tv.validator.IsValidDescriptionLength(trimmed) {
		ve.AddInvalidLengthError("description", trimmed, 1, tv.validator.DescriptionMaxLength())
	}
}

func (tv *TaskValidator) checkStatus(ve *ValidationError, status domain.Status) {
	// Empty means "use the default"
	if status == "" {
		return
	}
	if !status.IsValid() {
		ve.AddInvalidValueError("status", string(status), fmt.Sprintf("must be one of %v", domain.AllStatuses()))
	}
}

func (tv *TaskValidator) checkTags(ve *ValidationError, tags []string) {
	deduped := domain.DedupeTags(tags)
	if max := tv.validator.MaxTags(); max > 0 && len(deduped) > max {
		ve.AddInvalidRangeError("tags", len(deduped), fmt.Sprintf("at most %d tags are allowed", max))
	}
	for _, tag := range deduped {
		if !tv.validator.IsSingleLine(tag) {
			ve.AddInvalidCharacterError("tags", tag)
		}
	}
}

// ValidateTaskInput validates every user-editable field of a task
func (tv *TaskValidator) ValidateTaskInput(input domain.TaskInput) error {
	validationError := NewValidationError()

	tv.checkTitle(validationError, input.Title)
	tv.checkDescription(validationError, input.Description)
	tv.checkStatus(validationError, input.Status)
	tv.checkTags(validationError, input.Tags)

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
