package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"task-list/internal/config"
)

// Default limits for task fields.
const (
	DefaultTitleMaxLength       = 100
	DefaultDescriptionMaxLength = 1000
	DefaultMaxTags              = 32
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length, counted in characters, is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTitleLength checks if a title length is within configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, 1, v.TitleMaxLength())
}

// IsValidDescriptionLength checks if a description length is within configured limits
func (v *Validator) IsValidDescriptionLength(description string) bool {
	return v.IsValidStringLength(description, 1, v.DescriptionMaxLength())
}

// IsSingleLine rejects newlines, tabs and other control characters
func (v *Validator) IsSingleLine(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns configured maximum title length or default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil && v.config.Validation.TitleMaxLength > 0 {
		return v.config.Validation.TitleMaxLength
	}
	return DefaultTitleMaxLength
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return DefaultDescriptionMaxLength
}

// MaxTags returns the configured tag limit. Zero means unlimited.
func (v *Validator) MaxTags() int {
	if v.config != nil {
		return v.config.Validation.MaxTags
	}
	return DefaultMaxTags
}
