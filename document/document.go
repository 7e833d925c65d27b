package document

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Persister executes the persistence side effects the document layer asks
// for. The relation binding core only ever decides that a delete must
// happen; running it is the persister's job.
type Persister interface {
	DeleteOne(ctx context.Context, collection string, id bson.ObjectID) error
}

// Bindable is the capability a document must expose to take part in relation
// binding: identity, the parent reference and embedded tree on both sides,
// and the lifecycle queries the cascade rules depend on. Concrete models get
// the full set by embedding Base.
type Bindable interface {
	DocumentID() bson.ObjectID
	CollectionName() string

	Parent() Bindable
	SetParent(parent Bindable)
	Parentize(parent Bindable)
	EmbeddedPosition() int
	SetEmbeddedPosition(position int)

	EmbedChild(name string, child Bindable)
	UnembedChild(name string, child Bindable)
	EmbeddedChildren(name string) []Bindable

	Persisted() bool
	Destroyed() bool
	Delete(ctx context.Context) error
}

type BeforeDeleteHook interface {
	BeforeDelete() error
}

type AfterDeleteHook interface {
	AfterDelete() error
}
