package document

import (
	"context"

	"github.com/bytedance/sonic"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Base is the embeddable document core. Models embed it to satisfy Bindable:
//
//	type Address struct {
//	    document.Base
//	    Street string `bson:"street" json:"street"`
//	}
type Base struct {
	id         bson.ObjectID
	collection string
	attributes bson.M

	parent   Bindable
	position int

	children map[string][]Bindable

	persister Persister
	persisted bool
	destroyed bool
}

// NewBase returns a document core bound to the given collection name with a
// fresh identity and no parent.
func NewBase(collection string) Base {
	return Base{
		id:         bson.NewObjectID(),
		collection: collection,
		attributes: bson.M{},
		position:   -1,
		children:   map[string][]Bindable{},
	}
}

func (b *Base) DocumentID() bson.ObjectID {
	if b.id.IsZero() {
		b.id = bson.NewObjectID()
	}
	return b.id
}

func (b *Base) SetDocumentID(id bson.ObjectID) {
	b.id = id
}

func (b *Base) CollectionName() string {
	return b.collection
}

// Parent returns the owning document, or nil when the document is not
// embedded anywhere.
func (b *Base) Parent() Bindable {
	return b.parent
}

// SetParent replaces the parent reference. Clearing the parent also clears
// the recorded embedded position.
func (b *Base) SetParent(parent Bindable) {
	b.parent = parent
	if parent == nil {
		b.position = -1
	}
}

// Parentize installs parent as the owner of this document. It only records
// the structural relationship; installing the document into the owner's
// embedded tree is the binding's job.
func (b *Base) Parentize(parent Bindable) {
	b.parent = parent
}

// EmbeddedPosition reports the document's index inside its parent slot, or
// -1 when the document has not been embedded yet.
func (b *Base) EmbeddedPosition() int {
	return b.position
}

func (b *Base) SetEmbeddedPosition(position int) {
	b.position = position
}

// EmbedChild installs child at the end of the named embedded slot. Embedding
// an already present child is a no-op apart from refreshing its recorded
// position.
func (b *Base) EmbedChild(name string, child Bindable) {
	if b.children == nil {
		b.children = map[string][]Bindable{}
	}

	slot := b.children[name]
	for i, existing := range slot {
		if existing.DocumentID() == child.DocumentID() {
			child.SetEmbeddedPosition(i)
			return
		}
	}

	b.children[name] = append(slot, child)
	child.SetEmbeddedPosition(len(slot))
}

// UnembedChild removes child from the named slot and reindexes the documents
// behind it. Removing an absent child is a no-op.
func (b *Base) UnembedChild(name string, child Bindable) {
	slot := b.children[name]
	for i, existing := range slot {
		if existing.DocumentID() != child.DocumentID() {
			continue
		}

		slot = append(slot[:i], slot[i+1:]...)
		if len(slot) == 0 {
			delete(b.children, name)
		} else {
			b.children[name] = slot
		}

		for j := i; j < len(slot); j++ {
			slot[j].SetEmbeddedPosition(j)
		}
		return
	}
}

// EmbeddedChildren returns the documents currently held in the named slot in
// positional order. The returned slice is shared; callers must not mutate it.
func (b *Base) EmbeddedChildren(name string) []Bindable {
	return b.children[name]
}

func (b *Base) Persisted() bool {
	return b.persisted
}

func (b *Base) Destroyed() bool {
	return b.destroyed
}

// MarkPersisted records that the document has been durably saved. Saving
// itself happens in higher layers.
func (b *Base) MarkPersisted() {
	b.persisted = true
}

// SetPersister attaches the collaborator that executes delete requests. A
// document without a persister is deleted in memory only.
func (b *Base) SetPersister(persister Persister) {
	b.persister = persister
}

// Delete requests removal of the document through the attached persister and
// marks it destroyed. Persister failures propagate unchanged and leave the
// document alive.
func (b *Base) Delete(ctx context.Context) error {
	if b.destroyed {
		return nil
	}

	if b.persister != nil {
		if err := b.persister.DeleteOne(ctx, b.collection, b.DocumentID()); err != nil {
			return err
		}
	}

	b.destroyed = true
	b.persisted = false
	return nil
}

// Attributes returns the raw attribute map backing the document.
func (b *Base) Attributes() bson.M {
	if b.attributes == nil {
		b.attributes = bson.M{}
	}
	return b.attributes
}

func (b *Base) Attribute(name string) any {
	return b.attributes[name]
}

func (b *Base) SetAttribute(name string, value any) {
	if b.attributes == nil {
		b.attributes = bson.M{}
	}
	b.attributes[name] = value
}

// MarshalJSON exports the attribute map plus the document identity.
func (b *Base) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.attributes)+1)
	for k, v := range b.attributes {
		out[k] = v
	}
	out["id"] = b.DocumentID().Hex()
	return sonic.Marshal(out)
}
