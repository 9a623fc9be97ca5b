package domain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// Draft holds in-progress form values keyed by JSON field name. It never
// carries an id; the server assigns ids on create.
type Draft map[string]string

// Clone returns an independent copy of d.
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FieldError reports a problem with a single draft field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator is implemented by records with constraints beyond required fields.
type Validator interface {
	Validate() error
}

func (p BusinessProcess) Validate() error {
	if p.PriorityScore != nil && (*p.PriorityScore < 0 || *p.PriorityScore > 10) {
		return &FieldError{Field: "priority_score", Message: "must be between 0 and 10"}
	}
	return nil
}

// DraftOf flattens a record into form values. Unset optional fields become "".
func DraftOf(rec any) Draft {
	d := Draft{}
	rv := reflect.Indirect(reflect.ValueOf(rec))
	if rv.Kind() != reflect.Struct {
		return d
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		if name == "" || name == "id" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				d[name] = ""
				continue
			}
			fv = fv.Elem()
		}
		d[name] = fmt.Sprint(fv.Interface())
	}
	return d
}

// BindDraft converts form values into a record of type T. Blank values leave
// the field at its zero value; numeric fields are parsed with cast.
func BindDraft[T any](d Draft) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out, fmt.Errorf("binding draft: %T is not a struct", out)
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if name == "" || name == "id" {
			continue
		}
		raw, ok := d[name]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if err := setFromString(rv.Field(i), raw); err != nil {
			return out, &FieldError{Field: name, Message: fmt.Sprintf("invalid value %q", raw)}
		}
	}
	return out, nil
}

func setFromString(field reflect.Value, raw string) error {
	target := field.Type()
	if target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	converted, err := cast.FromType(raw, target)
	if err != nil {
		return err
	}
	val := reflect.ValueOf(converted).Convert(target)
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(target)
		ptr.Elem().Set(val)
		field.Set(ptr)
		return nil
	}
	field.Set(val)
	return nil
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" || !sf.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}
