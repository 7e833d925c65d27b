package relations

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-errors/errors"
	"github.com/simplereach/timeutils"
	"github.com/sserdyuk/mongoid/document"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Reserved timestamp attributes. Values under these keys are normalized to
// time.Time during coercion.
const (
	CREATED  = "created"
	MODIFIED = "modified"
	DELETED  = "deleted"
)

// Builder materializes a target document for a relation from whatever input
// the accessor layer received.
type Builder interface {
	Build() (document.Bindable, error)
}

// NestedBuilder materializes or updates a target document from form-style
// nested attributes.
type NestedBuilder interface {
	Build() (document.Bindable, error)
}

// ObjectBuilder accepts an already-built document unchanged, or materializes
// one from raw attributes through the relation metadata's factory.
type ObjectBuilder struct {
	metadata *Metadata
	object   any
}

func NewObjectBuilder(md *Metadata, object any) *ObjectBuilder {
	return &ObjectBuilder{metadata: md, object: object}
}

func (b *ObjectBuilder) Build() (document.Bindable, error) {
	if b.object == nil {
		if !b.metadata.Options().Autobuild {
			return nil, nil
		}
		return b.newTarget()
	}

	if doc, ok := b.object.(document.Bindable); ok {
		return doc, nil
	}

	attrs, err := CoerceAttributes(b.object)
	if err != nil {
		return nil, err
	}

	doc, err := b.newTarget()
	if err != nil {
		return nil, err
	}

	applyAttributes(doc, attrs)
	return doc, nil
}

func (b *ObjectBuilder) newTarget() (document.Bindable, error) {
	factory := b.metadata.Factory()
	if factory == nil {
		return nil, errors.Errorf("no factory registered for class %s", b.metadata.ClassName())
	}
	return factory(), nil
}

// NestedOptions controls how nested attribute assignment treats the current
// target.
type NestedOptions struct {
	AllowDestroy bool // honor the _destroy flag in the attributes
	UpdateOnly   bool // never build a new target, only update an existing one
}

// NestedObjectBuilder handles the to-one nested attributes protocol: update
// the existing target, build a fresh one, or signal destruction via the
// _destroy flag.
type NestedObjectBuilder struct {
	metadata   *Metadata
	attributes bson.M
	existing   document.Bindable
	options    NestedOptions
}

func NewNestedObjectBuilder(md *Metadata, attributes bson.M, options NestedOptions) *NestedObjectBuilder {
	return &NestedObjectBuilder{metadata: md, attributes: attributes, options: options}
}

// WithExisting supplies the relation's current target so the builder can
// update in place.
func (b *NestedObjectBuilder) WithExisting(doc document.Bindable) *NestedObjectBuilder {
	b.existing = doc
	return b
}

// Build returns the document to install, or nil when the attributes resolve
// to clearing the relation.
func (b *NestedObjectBuilder) Build() (document.Bindable, error) {
	if b.options.AllowDestroy && destroyFlag(b.attributes["_destroy"]) {
		return nil, nil
	}

	attrs, err := CoerceAttributes(b.attributes)
	if err != nil {
		return nil, err
	}
	delete(attrs, "_destroy")

	if b.existing != nil {
		applyAttributes(b.existing, attrs)
		return b.existing, nil
	}

	if b.options.UpdateOnly {
		return nil, nil
	}

	factory := b.metadata.Factory()
	if factory == nil {
		return nil, errors.Errorf("no factory registered for class %s", b.metadata.ClassName())
	}

	doc := factory()
	applyAttributes(doc, attrs)
	return doc, nil
}

type attributable interface {
	SetAttribute(name string, value any)
}

func applyAttributes(doc document.Bindable, attrs bson.M) {
	target, ok := doc.(attributable)
	if !ok {
		return
	}
	for name, value := range attrs {
		target.SetAttribute(name, value)
	}
}

// CoerceAttributes normalizes raw relation input into a bson.M. Maps pass
// through, bson.D is flattened, and arbitrary structs take a JSON round trip.
// Reserved timestamp attributes are parsed into time.Time.
func CoerceAttributes(object any) (bson.M, error) {
	var attrs bson.M

	switch value := object.(type) {
	case bson.M:
		attrs = bson.M{}
		for k, v := range value {
			attrs[k] = v
		}
	case map[string]any:
		attrs = bson.M{}
		for k, v := range value {
			attrs[k] = v
		}
	case bson.D:
		attrs = bson.M{}
		for _, elem := range value {
			attrs[elem.Key] = elem.Value
		}
	default:
		raw, err := sonic.Marshal(object)
		if err != nil {
			return nil, errors.Errorf("cannot coerce %T into attributes", object)
		}

		if err := sonic.Unmarshal(raw, &attrs); err != nil {
			return nil, errors.Errorf("cannot coerce %T into attributes", object)
		}
	}

	for _, name := range []string{CREATED, MODIFIED, DELETED} {
		value, ok := attrs[name]
		if !ok || value == nil {
			continue
		}

		date, err := coerceDate(value)
		if err != nil {
			return nil, err
		}
		attrs[name] = date
	}

	return attrs, nil
}

// coerceDate returns a time.Time from the given value.
func coerceDate(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		return *v, nil
	case string:
		return timeutils.ParseDateString(v)
	case *string:
		return timeutils.ParseDateString(*v)
	case int64:
		return time.Unix(v, 0), nil
	case *int64:
		return time.Unix(*v, 0), nil
	case float64:
		return time.Unix(int64(v), 0), nil
	default:
		return time.Time{}, errors.New("invalid date format")
	}
}

func destroyFlag(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || v == "true"
	case int:
		return v == 1
	case float64:
		return v == 1
	default:
		return false
	}
}
