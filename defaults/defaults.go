// Package defaults populates struct fields from `default` tags. Plugin
// constructors run it on every fresh instance so that params in the
// configuration document only need to override what differs.
package defaults

import (
	"reflect"
	"strconv"
	"time"
)

// SetDefaults sets default values for zero-valued struct fields using the
// "default" struct tag, e.g. `default:"8080"`. Nested and embedded structs
// are handled recursively. Non-struct values are ignored.
func SetDefaults(ptr any) error {
	if ptr == nil {
		return nil
	}

	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}

	v = v.Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := SetDefaults(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		tag, ok := fieldType.Tag.Lookup("default")
		if !ok || !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, tag); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue parses the tag value into the field's kind.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	}

	return nil
}
