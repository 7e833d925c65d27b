package embedded

import (
	"github.com/sserdyuk/mongoid/relations"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// InShape is the embedded-in variant of the relation shape factory. It is
// stateless; one value serves every relation registered under its macro.
type InShape struct{}

func (InShape) Macro() relations.Macro {
	return relations.MacroEmbeddedIn
}

// Embedded is always true for this shape: the child lives inside its owner's
// data rather than referencing it by id.
func (InShape) Embedded() bool {
	return true
}

func (InShape) Builder(md *relations.Metadata, object any) relations.Builder {
	return relations.NewObjectBuilder(md, object)
}

func (InShape) NestedBuilder(md *relations.Metadata, attributes bson.M, options relations.NestedOptions) relations.NestedBuilder {
	return relations.NewNestedObjectBuilder(md, attributes, options)
}
