package relations

import (
	"github.com/sserdyuk/mongoid/document"
)

// Macro is the symbolic tag identifying a relation shape to the
// registration machinery.
type Macro string

const (
	MacroEmbeddedIn Macro = "embedded_in"
	MacroEmbedsOne  Macro = "embeds_one"
	MacroEmbedsMany Macro = "embeds_many"
)

// Factory constructs an empty document of a relation's target class, ready
// to receive attributes.
type Factory func() document.Bindable

// Options carries the optional behaviors a relation declaration may enable.
type Options struct {
	Autobuild   bool // build an empty target when the accessor is read unset
	Polymorphic bool // target class resolved per document, not per relation
}

// Metadata is the immutable descriptor of a declared relation. It is built
// once at registration time and only read afterwards.
type Metadata struct {
	name      string
	inverse   string
	className string
	macro     Macro
	factory   Factory
	options   Options
}

func NewMetadata(name, inverse, className string, macro Macro, factory Factory, options Options) *Metadata {
	return &Metadata{
		name:      name,
		inverse:   inverse,
		className: className,
		macro:     macro,
		factory:   factory,
		options:   options,
	}
}

// Name is the relation name on the declaring document, e.g. "person".
func (md *Metadata) Name() string {
	return md.name
}

// Inverse is the slot name the declaring document occupies on the target,
// e.g. "addresses".
func (md *Metadata) Inverse() string {
	return md.inverse
}

// ClassName names the target document type.
func (md *Metadata) ClassName() string {
	return md.className
}

func (md *Metadata) Macro() Macro {
	return md.macro
}

func (md *Metadata) Factory() Factory {
	return md.factory
}

func (md *Metadata) Options() Options {
	return md.options
}
