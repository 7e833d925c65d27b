package embedded

import (
	"testing"

	"github.com/sserdyuk/mongoid/relations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinding_BindNilTargetIsNoop(t *testing.T) {
	addr := newAddress()

	NewBinding(addr, nil, personMetadata()).Bind(BindOptions{})

	assert.Nil(t, addr.Parent())
	assert.Equal(t, -1, addr.EmbeddedPosition())
}

func TestBinding_BindKeepsPositionStable(t *testing.T) {
	first := newAddress()
	second := newAddress()
	person := newPerson()

	md := personMetadata()
	NewBinding(first, person, md).Bind(BindOptions{})
	NewBinding(second, person, md).Bind(BindOptions{})

	assert.Equal(t, 0, first.EmbeddedPosition())
	assert.Equal(t, 1, second.EmbeddedPosition())

	// Rebinding the first document must not move it.
	NewBinding(first, person, md).Bind(BindOptions{})
	assert.Equal(t, 0, first.EmbeddedPosition())
	assert.Len(t, person.EmbeddedChildren("addresses"), 2)
}

func TestBinding_UnbindReindexesSiblings(t *testing.T) {
	first := newAddress()
	second := newAddress()
	person := newPerson()

	md := personMetadata()
	NewBinding(first, person, md).Bind(BindOptions{})
	NewBinding(second, person, md).Bind(BindOptions{})

	NewBinding(first, person, md).Unbind()

	children := person.EmbeddedChildren("addresses")
	require.Len(t, children, 1)
	assert.Same(t, second, children[0])
	assert.Equal(t, 0, second.EmbeddedPosition())
}

func TestBinding_UnbindLeavesMovedParentAlone(t *testing.T) {
	addr := newAddress()
	old := newPerson()
	current := newPerson()

	md := personMetadata()
	NewBinding(addr, old, md).Bind(BindOptions{})

	// The accessor has since moved the document under another parent.
	NewBinding(addr, current, md).Bind(BindOptions{})

	NewBinding(addr, old, md).Unbind()

	assert.Same(t, current, addr.Parent())
	assert.Empty(t, old.EmbeddedChildren("addresses"))
	require.Len(t, current.EmbeddedChildren("addresses"), 1)
}

func TestBinding_UnbindDetachedPairIsNoop(t *testing.T) {
	addr := newAddress()
	person := newPerson()

	md := personMetadata()
	binding := NewBinding(addr, person, md)
	binding.Unbind()
	binding.Unbind()

	assert.Nil(t, addr.Parent())
	assert.Empty(t, person.EmbeddedChildren("addresses"))
}

func TestInShape_RegistersInRegistry(t *testing.T) {
	registry := relations.NewRegistry()
	require.NoError(t, registry.Register(InShape{}))

	shape, err := registry.Shape(relations.MacroEmbeddedIn)
	require.NoError(t, err)

	existing := newAddress()
	built, err := shape.Builder(personMetadata(), existing).Build()
	require.NoError(t, err)
	assert.Same(t, existing, built)
}

func TestInShape_Identity(t *testing.T) {
	shape := InShape{}

	assert.Equal(t, "embedded_in", string(shape.Macro()))
	assert.True(t, shape.Embedded())
	assert.NotNil(t, shape.Builder(personMetadata(), nil))
	assert.NotNil(t, shape.NestedBuilder(personMetadata(), nil, relations.NestedOptions{}))
}
