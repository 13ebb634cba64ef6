package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the exported db-tagged fields of model.
// suffix, when set, is appended verbatim (for ON CONFLICT or RETURNING).
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	w := newWriter()
	w.raw("INSERT INTO ")
	w.raw(table)
	w.raw(" (")
	w.raw(strings.Join(cols, ", "))
	w.raw(") VALUES (")
	for i, v := range vals {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.raw(" ")
		w.raw(suffix)
	}
	return w.finish(nil)
}

func modelColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("insert model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert model must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	var (
		cols []string
		vals []any
	)
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, ErrNoColumns
	}
	return cols, vals, nil
}
