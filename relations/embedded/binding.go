// Package embedded implements the embedded-in relation: a child document
// whose accessor points up at the owner it is structurally nested inside.
package embedded

import (
	"github.com/sserdyuk/mongoid/document"
	"github.com/sserdyuk/mongoid/relations"
)

// BindOptions carries the optional hints a bind may receive.
type BindOptions struct {
	// Building marks binds issued while a builder is still assembling the
	// document graph. The binding carries it through untouched.
	Building bool
}

// Binding synchronizes the two structural views of one child/parent pair: the
// child's parent reference and the parent's embedded tree. It lives for a
// single bind or unbind and never touches storage; both documents are already
// in memory, so there is nothing worth a query.
type Binding struct {
	base     document.Bindable
	target   document.Bindable
	metadata *relations.Metadata
}

// NewBinding builds a binding over the child, the (possibly former) parent,
// and the relation metadata.
func NewBinding(base, target document.Bindable, md *relations.Metadata) *Binding {
	return &Binding{base: base, target: target, metadata: md}
}

// Bind points the child at the target and installs it into the target's
// embedded slot named by the metadata's inverse. Rebinding an unchanged pair
// only refreshes the child's recorded position.
func (b *Binding) Bind(opts BindOptions) {
	if b.target == nil {
		return
	}

	if b.base.Parent() != b.target {
		b.base.Parentize(b.target)
	}

	b.target.EmbedChild(b.metadata.Inverse(), b.base)
}

// Unbind detaches the child from the target on both sides. Unbinding an
// already-detached pair is a no-op; a parent reference that has since moved
// to another document is left alone.
func (b *Binding) Unbind() {
	if b.target != nil {
		b.target.UnembedChild(b.metadata.Inverse(), b.base)
	}

	if b.target == nil || b.base.Parent() == b.target {
		b.base.SetParent(nil)
	}
}
