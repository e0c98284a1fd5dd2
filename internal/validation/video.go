package validation

import (
	"fmt"
	"regexp"
)

// streamVideoIDRegex matches the canonical lowercase-or-uppercase UUID shape
// used by the external stream host for video identifiers.
var streamVideoIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateStreamVideoID checks that id has the canonical UUID shape.
func ValidateStreamVideoID(id string) error {
	if !streamVideoIDRegex.MatchString(id) {
		return fmt.Errorf("invalid stream video ID format")
	}
	return nil
}
