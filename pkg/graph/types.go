package graph

// Opcode identifies the kind of computation a Unit performs.
type Opcode string

const (
	// OpcodeParameters re-evaluates an object's animatable parameters.
	OpcodeParameters Opcode = "parameters"

	// OpcodeTransform recomputes an object's world transform.
	OpcodeTransform Opcode = "transform"

	// OpcodeGeometry rebuilds an object's evaluated geometry.
	OpcodeGeometry Opcode = "geometry"

	// OpcodePoseInit prepares a composite pose solve. It is the designated
	// entry operation of a pose group.
	OpcodePoseInit Opcode = "pose_init"

	// OpcodeBoneSolve solves a single bone within a pose.
	OpcodeBoneSolve Opcode = "bone_solve"

	// OpcodePoseDone finalizes a composite pose solve.
	OpcodePoseDone Opcode = "pose_done"

	// OpcodeSettingsEval evaluates simulation settings shared by many
	// consumers. It must not be forced to re-run merely because something
	// downstream of it changed.
	OpcodeSettingsEval Opcode = "settings_eval"

	// OpcodeShadowCopy refreshes an object's shadow copy from its original
	// data.
	OpcodeShadowCopy Opcode = "shadow_copy"
)

// terminalOpcodes is the closed set of opcodes excluded from the blanket
// group-level dirty tagging. Direct traversal into such a unit still marks
// it; only the sibling mass-tag skips it.
var terminalOpcodes = map[Opcode]bool{
	OpcodeSettingsEval: true,
}

// IsTerminal reports whether op is excluded from blanket group tagging.
func IsTerminal(op Opcode) bool {
	return terminalOpcodes[op]
}

// ComponentKind identifies the subsystem a Group represents within its
// owning object.
type ComponentKind string

const (
	// ComponentParameters holds parameter evaluation units.
	ComponentParameters ComponentKind = "parameters"

	// ComponentTransform holds transform evaluation units.
	ComponentTransform ComponentKind = "transform"

	// ComponentGeometry holds geometry evaluation units.
	ComponentGeometry ComponentKind = "geometry"

	// ComponentPose is the composite skeletal pose solve.
	ComponentPose ComponentKind = "pose"

	// ComponentBone is a per-bone stage of the composite pose solve. A
	// change to any bone group re-enters the whole pose group.
	ComponentBone ComponentKind = "bone"

	// ComponentShadowCopy refreshes the object's shadow copy. Groups that
	// declare DependsOnShadow are re-tagged through this group.
	ComponentShadowCopy ComponentKind = "shadow_copy"
)

// UnitFlag is a bitset of persistent dirty markers on a Unit.
type UnitFlag uint8

const (
	// FlagDirectlyModified marks a unit tagged by an external change.
	FlagDirectlyModified UnitFlag = 1 << iota

	// FlagNeedsUpdate marks a unit that must re-run because something it
	// depends on changed. Set by flush propagation.
	FlagNeedsUpdate
)

// VisitState tracks how far flush propagation has progressed into a Group
// within one pass. It only ever moves forward within a pass and is reset to
// VisitNone before the next one.
type VisitState uint8

const (
	// VisitNone means the group has not been reached this pass.
	VisitNone VisitState = iota

	// VisitScheduled means the group's entry operation has been pushed onto
	// the work list but the group has not been handled yet.
	VisitScheduled

	// VisitDone means the group's first-visit handler has run.
	VisitDone
)

// RecalcTag is a bitmask of recalculation intents recorded on a DataRecord.
type RecalcTag uint32

const (
	// RecalcTransform requests a transform recalculation.
	RecalcTransform RecalcTag = 1 << iota

	// RecalcGeometry requests a geometry recalculation.
	RecalcGeometry

	// RecalcAnimation requests an animation re-evaluation.
	RecalcAnimation
)

// RecalcAll covers every recalculation intent. The object first-visit
// handler merges Original.Tags&RecalcAll into the shadow record.
const RecalcAll = RecalcTransform | RecalcGeometry | RecalcAnimation

// DataRecord is one addressable data block: either an object's original
// data or its shadow copy used during evaluation.
type DataRecord struct {
	// Name identifies the record for logging and notifications.
	Name string

	// Tags accumulates recalculation intents recorded against this record.
	Tags RecalcTag

	// Expanded reports whether a shadow record has been materialized. Only
	// expanded shadow records are worth notifying observers about.
	Expanded bool
}

// Unit is the smallest schedulable item in the dependency graph. Its
// pointer identity is stable for the graph's lifetime.
type Unit struct {
	// Name is unique within the graph.
	Name string

	// Opcode is the computation kind tag.
	Opcode Opcode

	// Flags holds the persistent dirty markers. Cleared by ClearTags at
	// cycle boundaries, never mid-flush.
	Flags UnitFlag

	// Outlinks are the outgoing dependency edges. No ownership implied.
	Outlinks []*Unit

	// Owner is the group this unit belongs to.
	Owner *Group

	// Scheduled marks work-list membership. Valid only within one flush
	// pass; the engine resets it before seeding the work list and never
	// reads it across passes.
	Scheduled bool
}

// Group is a cohesive subsystem of an owning ObjectNode, grouping the units
// of one evaluation stage.
type Group struct {
	// Kind is the component type tag.
	Kind ComponentKind

	// State is the per-pass visit state, owned by the engine.
	State VisitState

	// Entry is the designated operation used to re-enter this group from
	// elsewhere. Defaults to the first unit added to the group.
	Entry *Unit

	// DependsOnShadow declares that this group's results depend on the
	// object's shadow-copy refresh.
	DependsOnShadow bool

	// Units are the computation units owned by this group.
	Units []*Unit

	// Owner is the object node this group belongs to.
	Owner *ObjectNode
}

// ObjectNode is one top-level addressable entity. It owns its component
// groups and references both its original data and the shadow copy used for
// evaluation.
type ObjectNode struct {
	// Name is unique within the graph.
	Name string

	// Components maps component kind to group. Keys are unique.
	Components map[ComponentKind]*Group

	// Original is the externally owned source record.
	Original *DataRecord

	// Shadow is the evaluation-time working copy of Original.
	Shadow *DataRecord

	// Visited flips false->true exactly once per flush pass, gating the
	// object first-visit side effects.
	Visited bool
}

// Component returns the group of the given kind, or nil.
func (o *ObjectNode) Component(kind ComponentKind) *Group {
	return o.Components[kind]
}
