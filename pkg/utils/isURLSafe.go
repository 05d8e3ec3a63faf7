package utils

import "regexp"

// IsURLSafe checks if a value (e.g. a project id) can be used as a
// part of an URL without escaping
func IsURLSafe(value string) bool {
	if value == "" {
		return false
	}

	pattern := `^[a-zA-Z0-9-_]+$`
	regex := regexp.MustCompile(pattern)

	return regex.MatchString(value)
}
