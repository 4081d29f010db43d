package postgres

import "strings"

// sqlf substitutes a trusted, constant where clause into a query template.
// It never receives user input; values always travel as bind parameters.
func sqlf(template, where string) string {
	return strings.Replace(template, "%s", where, 1)
}
