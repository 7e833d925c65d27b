package relations

import (
	"reflect"
	"strings"

	"github.com/go-errors/errors"
)

// Inspect scans a model struct for relation declarations and returns their
// metadata. Declarations live in the `mongoid` field tag:
//
//	type Address struct {
//	    document.Base
//	    Person *Person `bson:"-" mongoid:"embedded_in,inverse=addresses,class=Person"`
//	}
//
// The first tag element is the macro; the rest are key=value pairs. The
// relation name defaults to the lowercased field name, overridable with
// name=. Factories cannot be derived from tags; callers attach them to the
// returned metadata's registration site.
func Inspect(model any) ([]*Metadata, error) {
	if model == nil {
		return nil, errors.New("model cannot be nil")
	}

	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, errors.Errorf("cannot inspect relations of %T", model)
	}

	var result []*Metadata
	for i := 0; i < val.Type().NumField(); i++ {
		fieldStruct := val.Type().Field(i)
		if !fieldStruct.IsExported() {
			continue
		}

		tag := strings.TrimSpace(fieldStruct.Tag.Get("mongoid"))
		if tag == "" {
			continue
		}

		md, err := parseRelationTag(fieldStruct, tag)
		if err != nil {
			return nil, err
		}
		result = append(result, md)
	}

	return result, nil
}

func parseRelationTag(fieldStruct reflect.StructField, tag string) (*Metadata, error) {
	parts := strings.Split(tag, ",")

	macro := Macro(parts[0])
	switch macro {
	case MacroEmbeddedIn, MacroEmbedsOne, MacroEmbedsMany:
	default:
		return nil, errors.Errorf("unknown relation macro %q on field %s", parts[0], fieldStruct.Name)
	}

	name := strings.ToLower(fieldStruct.Name)
	inverse := ""
	className := fieldStruct.Type.Name()
	if fieldStruct.Type.Kind() == reflect.Ptr {
		className = fieldStruct.Type.Elem().Name()
	}

	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, errors.Errorf("malformed relation tag element %q on field %s", part, fieldStruct.Name)
		}

		switch key {
		case "name":
			name = value
		case "inverse":
			inverse = value
		case "class":
			className = value
		default:
			return nil, errors.Errorf("unknown relation tag key %q on field %s", key, fieldStruct.Name)
		}
	}

	return NewMetadata(name, inverse, className, macro, nil, Options{}), nil
}
