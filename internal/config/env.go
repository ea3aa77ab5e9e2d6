package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// EnvPrefix marks project-scoped variables. TEILNAHME_DB_HOST wins over DB_HOST.
const EnvPrefix = "TEILNAHME_"

// lookupEnv returns the prefixed variable if set, else the plain one
func lookupEnv(name string) (string, string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		return EnvPrefix + name, v, true
	}
	v, ok := os.LookupEnv(name)
	return name, v, ok
}

// processStructFields walks the config sections and overrides every field
// carrying an env tag whose variable is set. All bad values are reported together.
func processStructFields(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	var errs error
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			errs = errors.Join(errs, processStructFields(field.Addr().Interface()))
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		name, value, ok := lookupEnv(envTag)
		if !ok {
			continue
		}

		if err := setFieldFromEnv(field, value); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s=%q: %w", name, value, err))
		}
	}

	return errs
}

// setFieldFromEnv sets a string, int or bool field from its textual value
func setFieldFromEnv(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
