package database

import (
	"regexp"
	"strings"
)

const (
	maxBoardTitleLength  = 100
	maxColumnTitleLength = 100
	maxTaskTitleLength   = 200
	maxDescriptionLength = 15000
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateBoardTitle trims and bounds a board title.
func ValidateBoardTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxBoardTitleLength {
		return "", &ValidationError{Field: "title", Message: "title is too long"}
	}
	return title, nil
}

// ValidateColumnInput validates a column title and color. The color must be
// empty or a #rrggbb hex string; empty is stored as null.
func ValidateColumnInput(title, color string) (string, *string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxColumnTitleLength {
		return "", nil, &ValidationError{Field: "title", Message: "title is too long"}
	}
	if color == "" {
		return title, nil, nil
	}
	if !colorPattern.MatchString(color) {
		return "", nil, &ValidationError{Field: "color", Message: "color must be a hex color like #10b981"}
	}
	return title, &color, nil
}

// ValidateTaskInput validates a task title and description. An empty
// description is stored as null.
func ValidateTaskInput(title, description string) (string, *string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxTaskTitleLength {
		return "", nil, &ValidationError{Field: "title", Message: "title is too long"}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return title, nil, nil
	}
	if len(description) > maxDescriptionLength {
		return "", nil, &ValidationError{Field: "description", Message: "description is too long"}
	}
	return title, &description, nil
}
