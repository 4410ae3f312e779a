package cf

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Load populates cf's exported fields from data. Keys come from the `cf`
// struct tag, falling back to the field name. Integer fields accept any
// integer-shaped value; float fields also accept integers, which is what
// YAML-decoded maps tend to hand us.
func Load(data map[string]interface{}, cf interface{}) error {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return errors.Errorf("cf type [%s] not struct", cfV.Type())
	}
	for i := 0; i < cfV.NumField(); i++ {
		if !cfV.Field(i).CanInterface() || !cfV.Field(i).CanSet() {
			continue
		}
		key := keyName(cfV.Type().Field(i))
		v, found := data[key]
		if !found {
			continue
		}
		field := cfV.Field(i)
		switch field.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			j, ok := asInt64(v)
			if !ok {
				return typeMismatch(key, v, field)
			}
			field.SetInt(j)

		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			j, ok := asInt64(v)
			if !ok || j < 0 {
				return typeMismatch(key, v, field)
			}
			field.SetUint(uint64(j))

		case reflect.Float64:
			if f, ok := v.(float64); ok {
				field.SetFloat(f)
			} else if j, ok := asInt64(v); ok {
				field.SetFloat(float64(j))
			} else {
				return typeMismatch(key, v, field)
			}

		case reflect.Bool:
			b, ok := v.(bool)
			if !ok {
				return typeMismatch(key, v, field)
			}
			field.SetBool(b)

		case reflect.String:
			s, ok := v.(string)
			if !ok {
				return typeMismatch(key, v, field)
			}
			field.SetString(s)

		default:
			return errors.Errorf("unsupported field type [%s]", field.Type())
		}
	}
	return nil
}

func asInt64(v interface{}) (int64, bool) {
	switch j := v.(type) {
	case int:
		return int64(j), true
	case int32:
		return int64(j), true
	case int64:
		return j, true
	case uint:
		return int64(j), true
	case uint32:
		return int64(j), true
	case uint64:
		return int64(j), true
	default:
		return 0, false
	}
}

func typeMismatch(key string, v interface{}, field reflect.Value) error {
	return errors.Errorf("field '%s' type mismatch, got [%s], expected [%s]", key, reflect.TypeOf(v), field.Type())
}

func Dump(label string, cf interface{}) string {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return ""
	}
	out := label + " {\n"
	format := fmt.Sprintf("\t%%-%ds %%v\n", maxKeyLength(cfV))
	for i := 0; i < cfV.NumField(); i++ {
		if cfV.Field(i).CanInterface() {
			key := keyName(cfV.Type().Field(i))
			out += fmt.Sprintf(format, key, cfV.Field(i).Interface())
		}
	}
	out += "}\n"
	return out
}

func keyName(v reflect.StructField) string {
	key := v.Name
	tag := v.Tag.Get("cf")
	if tag != "" {
		key = tag
	}
	return key
}

func maxKeyLength(cfV reflect.Value) int {
	maxKeyLength := 0
	for i := 0; i < cfV.NumField(); i++ {
		key := keyName(cfV.Type().Field(i))
		if len(key) > maxKeyLength {
			maxKeyLength = len(key)
		}
	}
	return maxKeyLength
}
