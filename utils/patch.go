package utils

import (
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm/schema"
)

var naming = schema.NamingStrategy{}

// UpdatesFromPtrDTO builds a map[string]any containing only non-nil *fields from a pointer DTO.
// Keys are the column names GORM derives from the Go field name (or a `gorm:"column:x"` tag),
// so DTO fields must be named like the model fields they patch. Fields tagged `patch:"-"` are skipped.
func UpdatesFromPtrDTO(dto any) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return res
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := s.Field(i)
		if !sf.IsExported() || sf.Tag.Get("patch") == "-" {
			continue
		}
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		res[columnName(sf)] = fv.Elem().Interface()
	}
	return res
}

func columnName(sf reflect.StructField) string {
	for _, part := range strings.Split(sf.Tag.Get("gorm"), ";") {
		if name, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok && name != "" {
			return name
		}
	}
	return naming.ColumnName("", sf.Name)
}

// ParseIntDefault parses a non-negative int, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
