package graph

import "fmt"

// Builder constructs a Graph from object, group, unit, and edge
// declarations. It validates the description as it goes and again at Build
// time, so a successfully built graph satisfies every structural invariant
// the flush engine relies on.
type Builder struct {
	graph *Graph
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{graph: New()}
}

// AddObject declares a new object node with fresh original and shadow
// records.
func (b *Builder) AddObject(name string) error {
	if name == "" {
		return NewValidationError("object has empty name", nil)
	}
	if _, exists := b.graph.objectsByName[name]; exists {
		return NewValidationError(fmt.Sprintf("duplicate object name: %s", name), nil).
			WithNode(name)
	}

	obj := &ObjectNode{
		Name:       name,
		Components: make(map[ComponentKind]*Group),
		Original:   &DataRecord{Name: name},
		Shadow:     &DataRecord{Name: name + ".shadow"},
	}
	b.graph.objectsByName[name] = obj
	b.graph.Objects = append(b.graph.Objects, obj)
	return nil
}

// AddGroup declares a component group on an existing object. Each object
// holds at most one group per kind.
func (b *Builder) AddGroup(object string, kind ComponentKind, dependsOnShadow bool) error {
	obj, exists := b.graph.objectsByName[object]
	if !exists {
		return NewValidationError(fmt.Sprintf("group %s declared on unknown object %s", kind, object), nil).
			WithNode(object)
	}
	if _, exists := obj.Components[kind]; exists {
		return NewValidationError(fmt.Sprintf("object %s already has a %s group", object, kind), nil).
			WithNode(object)
	}

	obj.Components[kind] = &Group{
		Kind:            kind,
		DependsOnShadow: dependsOnShadow,
		Owner:           obj,
	}
	return nil
}

// AddUnit declares a computation unit inside an existing group. Unit names
// are unique across the whole graph. The first unit added to a group
// becomes its entry operation; SetEntry overrides that.
func (b *Builder) AddUnit(object string, kind ComponentKind, name string, opcode Opcode) error {
	if name == "" {
		return NewValidationError("unit has empty name", nil)
	}
	if _, exists := b.graph.unitsByName[name]; exists {
		return NewValidationError(fmt.Sprintf("duplicate unit name: %s", name), nil).
			WithNode(name)
	}
	obj, exists := b.graph.objectsByName[object]
	if !exists {
		return NewValidationError(fmt.Sprintf("unit %s declared on unknown object %s", name, object), nil).
			WithNode(name)
	}
	comp := obj.Components[kind]
	if comp == nil {
		return NewValidationError(fmt.Sprintf("unit %s declared in missing %s group of object %s", name, kind, object), nil).
			WithNode(name)
	}

	u := &Unit{
		Name:   name,
		Opcode: opcode,
		Owner:  comp,
	}
	comp.Units = append(comp.Units, u)
	if comp.Entry == nil {
		comp.Entry = u
	}
	b.graph.unitsByName[name] = u
	b.graph.Units = append(b.graph.Units, u)
	return nil
}

// SetEntry overrides a group's designated entry operation. The unit must
// already belong to that group.
func (b *Builder) SetEntry(object string, kind ComponentKind, unit string) error {
	obj, exists := b.graph.objectsByName[object]
	if !exists {
		return NewValidationError(fmt.Sprintf("unknown object %s", object), nil).WithNode(object)
	}
	comp := obj.Components[kind]
	if comp == nil {
		return NewValidationError(fmt.Sprintf("object %s has no %s group", object, kind), nil).
			WithNode(object)
	}
	u := b.graph.unitsByName[unit]
	if u == nil || u.Owner != comp {
		return NewValidationError(fmt.Sprintf("unit %s is not owned by the %s group of object %s", unit, kind, object), nil).
			WithNode(unit)
	}

	comp.Entry = u
	return nil
}

// Connect adds a dependency edge from one unit to another: when the from
// unit is dirtied, the to unit must re-run.
func (b *Builder) Connect(from, to string) error {
	fromUnit := b.graph.unitsByName[from]
	if fromUnit == nil {
		return NewValidationError(fmt.Sprintf("edge references unknown unit %s", from), nil).
			WithNode(from)
	}
	toUnit := b.graph.unitsByName[to]
	if toUnit == nil {
		return NewValidationError(fmt.Sprintf("edge references unknown unit %s", to), nil).
			WithNode(to)
	}
	if fromUnit == toUnit {
		return NewValidationError(fmt.Sprintf("unit %s depends on itself", from), nil).
			WithNode(from)
	}

	fromUnit.Outlinks = append(fromUnit.Outlinks, toUnit)
	return nil
}

// UseShadowCopy enables shadow-copy re-tagging on the built graph.
func (b *Builder) UseShadowCopy(enabled bool) {
	b.graph.UseShadowCopy = enabled
}

// Build finalizes and validates the graph. The flush engine re-enters pose
// and shadow-copy groups through their entry operations, so those groups
// must exist and be non-empty wherever a group can trigger the re-entry.
func (b *Builder) Build() (*Graph, error) {
	for _, obj := range b.graph.Objects {
		for kind, comp := range obj.Components {
			if len(comp.Units) == 0 {
				return nil, NewValidationError(
					fmt.Sprintf("%s group of object %s has no entry operation", kind, obj.Name), nil).
					WithNode(obj.Name)
			}
		}

		if obj.Component(ComponentBone) != nil && obj.Component(ComponentPose) == nil {
			return nil, NewValidationError(
				fmt.Sprintf("object %s has a bone group but no pose group to re-enter", obj.Name), nil).
				WithNode(obj.Name)
		}

		for _, comp := range obj.Components {
			if comp.DependsOnShadow && obj.Component(ComponentShadowCopy) == nil {
				return nil, NewValidationError(
					fmt.Sprintf("%s group of object %s depends on a missing shadow-copy group", comp.Kind, obj.Name), nil).
					WithNode(obj.Name)
			}
		}
	}

	return b.graph, nil
}
