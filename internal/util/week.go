package util

import "regexp"

// weekPattern matches ISO-style week labels like "2024-W03". Labels in this
// form sort lexically in chronological order, which the payment list relies on.
var weekPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// ValidWeek reports whether s is a sortable week label.
func ValidWeek(s string) bool {
	return weekPattern.MatchString(s)
}
