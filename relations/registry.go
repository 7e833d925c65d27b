package relations

import (
	"github.com/go-errors/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Shape is the factory surface every relation variant implements. The
// registration layer never inspects a variant's concrete type; it selects one
// through a Registry by macro tag and drives it through this interface.
type Shape interface {
	// Macro returns the canonical tag for the variant.
	Macro() Macro

	// Embedded reports whether documents of this shape live inside their
	// owner rather than being referenced by id.
	Embedded() bool

	// Builder selects the builder that materializes a target document from
	// either an already-built document or raw attributes.
	Builder(md *Metadata, object any) Builder

	// NestedBuilder selects the builder used for form-style nested
	// attribute assignment.
	NestedBuilder(md *Metadata, attributes bson.M, options NestedOptions) NestedBuilder
}

// Registry maps macro tags to relation shape variants. It is an explicit
// dependency of whatever layer registers relations; there is no process-wide
// instance.
type Registry struct {
	shapes map[Macro]Shape
}

func NewRegistry() *Registry {
	return &Registry{shapes: map[Macro]Shape{}}
}

func (receiver *Registry) Register(shape Shape) error {
	if receiver == nil {
		return errors.New("registry is nil")
	}

	if shape == nil {
		return errors.New("shape cannot be nil")
	}

	macro := shape.Macro()
	if _, ok := receiver.shapes[macro]; ok {
		return errors.Errorf("the shape %s is already registered", macro)
	}

	receiver.shapes[macro] = shape
	return nil
}

func (receiver *Registry) Shape(macro Macro) (Shape, error) {
	if receiver == nil {
		return nil, errors.New("registry is nil")
	}

	shape, ok := receiver.shapes[macro]
	if !ok {
		return nil, errors.Errorf("the shape %s is not registered", macro)
	}

	return shape, nil
}

// Has reports whether a variant is registered for the macro.
func (receiver *Registry) Has(macro Macro) bool {
	if receiver == nil {
		return false
	}
	_, ok := receiver.shapes[macro]
	return ok
}
