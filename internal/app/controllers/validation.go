package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgRequired = "This field is required."

var registerOnce sync.Once

// RegisterValidation makes validator report JSON field names. Safe to call
// more than once.
func RegisterValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldErrors converts validator errors and JSON type mismatches into
// {field: [messages]}. It returns nil for any other bind error.
func fieldErrors(err error) map[string][]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string][]string{typeFieldKey(typeErr.Field): {typeMessage(typeErr.Type)}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe)
		out[key] = append(out[key], fieldMessage(fe))
	}
	return out
}

// fieldKey drops the root struct name: "CensusRequest.gender" -> "gender",
// "HouseholdRequest.members[0].name" -> "members[0].name".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// typeFieldKey renders a decoder path in validator form:
// "members.0.age" -> "members[0].age".
func typeFieldKey(path string) string {
	parts := strings.Split(path, ".")
	var b strings.Builder
	for i, part := range parts {
		if _, err := strconv.Atoi(part); err == nil && i > 0 {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Not a valid integer value."
	case reflect.Float32, reflect.Float64:
		return "Not a valid float value."
	case reflect.String:
		return "Not a valid string value."
	case reflect.Bool:
		return "Not a valid boolean value."
	case reflect.Slice, reflect.Array:
		return "Not a valid list."
	default:
		return "Invalid value."
	}
}

func fieldMessage(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		numeric = true
	}

	if strings.HasPrefix(fe.Tag(), "e164") {
		return "Not a valid mobile number."
	}

	switch fe.Tag() {
	case "required":
		return msgRequired
	case "oneof":
		return "Not a valid choice."
	case "datetime":
		return "Not a valid date value."
	case "max":
		if numeric {
			return fmt.Sprintf("Number must be at most %s.", fe.Param())
		}
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		if numeric {
			return fmt.Sprintf("Number must be at least %s.", fe.Param())
		}
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}

// onlyRequired reports whether every error in errs is a missing field.
func onlyRequired(errs map[string][]string) bool {
	for _, msgs := range errs {
		for _, m := range msgs {
			if m != msgRequired {
				return false
			}
		}
	}
	return true
}

// firstFieldError renders the alphabetically first field error as one line.
func firstFieldError(errs map[string][]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 || len(errs[keys[0]]) == 0 {
		return "Invalid request"
	}
	return keys[0] + ": " + errs[keys[0]][0]
}

// flexString decodes from a JSON string or number, so clients that send
// {"mobile_number": 9999999999} or {"otp": 1234} bind the digits.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf("")}
	}
	*s = flexString(n.String())
	return nil
}
