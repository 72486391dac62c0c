package db

import "reflect"

// GetCols returns the db column names of a struct based on its `db` tags.
// Fields tagged `db:"-"` are skipped.
func GetCols(s any) []string {
	refType := reflect.TypeOf(s)

	var cols []string

	for _, f := range reflect.VisibleFields(refType) {
		tag := f.Tag.Get("db")

		if tag == "" || tag == "-" {
			continue
		}

		cols = append(cols, tag)
	}

	return cols
}
