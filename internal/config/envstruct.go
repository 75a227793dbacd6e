package config

import (
	"log/slog"
	"reflect"

	"detectivequest/internal/errors"
)

var (
	ErrEnvNotSet    = errors.NewSentinel("environment variable not set")
	ErrInvalidValue = errors.NewSentinel("invalid config target")
)

// Populate fills the tagged fields of the struct v points to.
//
// A field tagged `env:"NAME"` takes the value of NAME as returned by lookupEnv, or the `envDefault` tag when NAME
// is unset. A field with neither yields ErrEnvNotSet. String and bool fields are supported; bools are read with
// [ParseBool]. Every field is checked before Populate returns, so one call reports all problems at once.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Struct {
		return errors.Wrap(ErrInvalidValue, "need a pointer to a struct", slog.Any("v", v))
	}
	target = target.Elem()

	var errs []error
	for i := range target.NumField() {
		field := target.Type().Field(i)
		name, tagged := field.Tag.Lookup("env")
		if !tagged {
			continue
		}
		if err := setField(target.Field(i), field, name, lookupEnv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func setField(value reflect.Value, field reflect.StructField, name string, lookupEnv func(string) (string, bool)) error {
	attrs := []slog.Attr{slog.String("field", field.Name), slog.String("env", name)}
	if !value.CanSet() {
		return errors.Wrap(ErrInvalidValue, "unexported field", attrs...)
	}

	raw, ok := lookupEnv(name)
	if !ok {
		if raw, ok = field.Tag.Lookup("envDefault"); !ok {
			return errors.Wrap(ErrEnvNotSet, "no value or default", attrs...)
		}
	}

	switch value.Kind() { //nolint:exhaustive // other kinds are rejected below
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		value.SetBool(ParseBool(raw))
	default:
		return errors.Wrap(ErrInvalidValue, "unsupported field kind",
			append(attrs, slog.String("kind", value.Kind().String()))...)
	}
	return nil
}
