package cloner

import (
	"github.com/huandu/go-clone"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Builder accumulates the types and members a clone operation should
// carry. Registration order is preserved; re-registering a type or member
// keeps its first position. The zero value is not usable; construct with
// NewBuilder.
type Builder struct {
	types     []*metadata.TypeDef
	typeSet   map[*metadata.TypeDef]struct{}
	members   []metadata.Member
	memberSet map[metadata.Member]struct{}
}

// NewBuilder creates a Builder, optionally seeded with types already
// slated for cloning by the caller.
func NewBuilder(existing ...*metadata.TypeDef) *Builder {
	b := &Builder{
		typeSet:   make(map[*metadata.TypeDef]struct{}),
		memberSet: make(map[metadata.Member]struct{}),
	}
	for _, t := range existing {
		_ = b.AddType(t)
	}
	return b
}

// AddType slates a type for wholesale cloning. Implements
// selector.CloneSet.
func (b *Builder) AddType(t *metadata.TypeDef) error {
	if t == nil {
		return nil
	}
	if _, ok := b.typeSet[t]; ok {
		return nil
	}
	b.typeSet[t] = struct{}{}
	b.types = append(b.types, t)
	return nil
}

// AddMember slates a member for individual cloning. Implements
// selector.CloneSet.
func (b *Builder) AddMember(m metadata.Member) error {
	if m == nil {
		return nil
	}
	if _, ok := b.memberSet[m]; ok {
		return nil
	}
	b.memberSet[m] = struct{}{}
	b.members = append(b.members, m)
	return nil
}

// PendingTypes returns the pending type set in registration order.
// Implements selector.CloneSet. The returned slice is a copy.
func (b *Builder) PendingTypes() ([]*metadata.TypeDef, error) {
	out := make([]*metadata.TypeDef, len(b.types))
	copy(out, b.types)
	return out, nil
}

// PendingMembers returns the pending member set in registration order.
// The returned slice is a copy.
func (b *Builder) PendingMembers() []metadata.Member {
	out := make([]metadata.Member, len(b.members))
	copy(out, b.members)
	return out
}

// cloneGraph is the unit handed to the deep-copy primitive. Cloning types
// and members together gives them a shared identity map: a registered
// member declared on a pending type resolves to the copy inside that
// type's clone, not to a second copy.
type cloneGraph struct {
	Types   []*metadata.TypeDef
	Members []metadata.Member
}

// Clone deep-copies the selected graph and returns the clone result.
// The source graph is never modified.
//
// clone.Slowly tolerates the cycles a member graph always has (member
// back-pointers into their declaring type). After the copy, members whose
// declaring type was not slated for wholesale cloning are detached: the
// stray copy of their original owner is dropped and they come out
// ownerless. A detached property's accessor clones are detached with it;
// they ride along through the Getter/Setter references and must not keep
// pointing at the dropped stray copy.
func (b *Builder) Clone() (*CloneResult, error) {
	g := cloneGraph{Types: b.types, Members: b.members}
	cloned := clone.Slowly(g).(cloneGraph)

	for i, orig := range b.members {
		owner := orig.Declaring()
		if owner == nil {
			continue
		}
		if _, pending := b.typeSet[owner]; !pending {
			detach(cloned.Members[i])
		}
	}

	return &CloneResult{Types: cloned.Types, Members: cloned.Members}, nil
}

// detach makes a standalone-cloned member ownerless, including the
// accessors a property carries.
func detach(m metadata.Member) {
	m.SetDeclaring(nil)
	if p, ok := m.(*metadata.Property); ok {
		if p.Getter != nil {
			p.Getter.SetDeclaring(nil)
		}
		if p.Setter != nil {
			p.Setter.SetDeclaring(nil)
		}
	}
}
