package utils

// ContainsString checks if a string is present in a slice of strings
func ContainsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// AppendUnique appends items to the slice, skipping values already present
func AppendUnique(slice []string, items ...string) []string {
	for _, item := range items {
		if !ContainsString(slice, item) {
			slice = append(slice, item)
		}
	}
	return slice
}
