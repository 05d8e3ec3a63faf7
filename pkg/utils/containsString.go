package utils

// ContainsString reports whether searchTerm occurs in slice, e.g. for
// checking a requested export format against the allowed ones.
func ContainsString(slice []string, searchTerm string) bool {
	for _, s := range slice {
		if searchTerm == s {
			return true
		}
	}
	return false
}
