package embedded

import (
	"context"

	"github.com/sserdyuk/mongoid/document"
	"github.com/sserdyuk/mongoid/relations"
)

// In is the relation handle behind a document's embedded-in accessor. It
// holds the child it was created for, the current owner, and the relation
// metadata, and funnels every relationship mutation through Bind and Unbind.
type In struct {
	base     document.Bindable
	target   document.Bindable
	metadata *relations.Metadata
}

// NewIn builds the relation handle. A non-nil target is parentized
// immediately: the structural position is wired at construction, before any
// explicit Bind.
func NewIn(base, target document.Bindable, md *relations.Metadata) *In {
	rel := &In{base: base, target: target, metadata: md}
	if target != nil {
		base.Parentize(target)
	}
	return rel
}

func (rel *In) Base() document.Bindable {
	return rel.base
}

// Target returns the current owner, nil before the first bind or after an
// unbind with no replacement.
func (rel *In) Target() document.Bindable {
	return rel.target
}

// SetTarget replaces the owner reference without binding. The accessor layer
// calls Bind or Unbind afterwards to synchronize the graph.
func (rel *In) SetTarget(target document.Bindable) {
	rel.target = target
}

func (rel *In) Metadata() *relations.Metadata {
	return rel.metadata
}

// Bind synchronizes the child with the current target. Purely in-memory and
// idempotent for an unchanged pair.
func (rel *In) Bind(opts BindOptions) {
	NewBinding(rel.base, rel.target, rel.metadata).Bind(opts)
}

// Unbind detaches the child from oldTarget, then cascades: a child removed
// from an already-persisted owner cannot outlive the detachment, so its
// deletion is requested unless it is already marked destroyed. The structural
// detach always happens first; the graph is consistent before any
// persistence side effect fires, and a delete failure propagates unchanged.
func (rel *In) Unbind(ctx context.Context, oldTarget document.Bindable) error {
	NewBinding(rel.base, oldTarget, rel.metadata).Unbind()

	if oldTarget == nil || !oldTarget.Persisted() || rel.base.Destroyed() {
		return nil
	}

	if hook, ok := rel.base.(document.BeforeDeleteHook); ok {
		if err := hook.BeforeDelete(); err != nil {
			return err
		}
	}

	if err := rel.base.Delete(ctx); err != nil {
		return err
	}

	if hook, ok := rel.base.(document.AfterDeleteHook); ok {
		return hook.AfterDelete()
	}
	return nil
}
