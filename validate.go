package listservice

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

const (
	maxListIDLength = 255
	maxItemCount    = 10000
	maxItemLength   = 1000

	// DefaultSliceSize is the number of items returned by the head and tail
	// views when the n query parameter is absent.
	DefaultSliceSize = 10
	// MaxSliceSize is the largest accepted value for the n query parameter.
	MaxSliceSize = 100
)

var listIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateListID checks the shape of a list identifier: non-empty, at most
// 255 characters, restricted to letters, digits, hyphens, and underscores.
// It returns the identifier unchanged on success.
func ValidateListID(listID string) (string, error) {
	if listID == "" {
		return "", ValidationError{Message: "list_id is required"}
	}
	if len(listID) > maxListIDLength {
		return "", ValidationError{Message: "list_id must be 255 characters or less"}
	}
	if !listIDPattern.MatchString(listID) {
		return "", ValidationError{Message: "list_id must contain only alphanumeric characters, hyphens, and underscores"}
	}
	return listID, nil
}

// ValidateSliceSize parses the n query parameter. An empty value means the
// parameter was absent and yields DefaultSliceSize. Anything unparseable,
// below 1, or above MaxSliceSize is rejected.
func ValidateSliceSize(raw string) (int, error) {
	if raw == "" {
		return DefaultSliceSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Message: fmt.Sprintf("Invalid parameter: n must be an integer, got '%s'", raw)}
	}
	if n < 1 {
		return 0, ValidationError{Message: fmt.Sprintf("Invalid parameter: n must be at least 1, got %d", n)}
	}
	if n > MaxSliceSize {
		return 0, ValidationError{Message: fmt.Sprintf("Invalid parameter: n must be at most %d, got %d", MaxSliceSize, n)}
	}
	return n, nil
}

// ValidateItems checks the items value from a decoded request body: it must
// be a non-empty array of at most 10,000 strings, each at most 1000
// characters. The element index is included in rejection messages.
func ValidateItems(value interface{}) ([]string, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, ValidationError{Message: "items must be an array"}
	}
	if len(raw) == 0 {
		return nil, ValidationError{Message: "items array cannot be empty"}
	}
	if len(raw) > maxItemCount {
		return nil, ValidationError{Message: "items array cannot exceed 10,000 elements"}
	}
	items := make([]string, 0, len(raw))
	for i, element := range raw {
		s, ok := element.(string)
		if !ok {
			return nil, ValidationError{Message: fmt.Sprintf("items[%d] must be a string", i)}
		}
		if utf8.RuneCountInString(s) > maxItemLength {
			return nil, ValidationError{Message: fmt.Sprintf("items[%d] exceeds maximum length of %d characters", i, maxItemLength)}
		}
		items = append(items, s)
	}
	return items, nil
}

// ValidateBody decodes a raw request body and checks that the required items
// field is present. An absent or unparseable body is rejected before any
// field checks.
func ValidateBody(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return nil, ValidationError{Message: "Request body is required"}
	}
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &body); err != nil || body == nil {
		return nil, ValidationError{Message: "Request body is required"}
	}
	if _, ok := body["items"]; !ok {
		return nil, ValidationError{Message: "Request body must contain 'items' field"}
	}
	return body, nil
}
