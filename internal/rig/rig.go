package rig

import (
	"fmt"
	"sort"
	"strings"
)

// Standard transform channel names, matching host attribute short names.
const (
	ChannelTranslateX = "tx"
	ChannelTranslateY = "ty"
	ChannelTranslateZ = "tz"
	ChannelRotateX    = "rx"
	ChannelRotateY    = "ry"
	ChannelRotateZ    = "rz"
	ChannelScaleX     = "sx"
	ChannelScaleY     = "sy"
	ChannelScaleZ     = "sz"
)

// TransformChannels lists the nine standard channels every joint carries.
var TransformChannels = []string{
	ChannelTranslateX, ChannelTranslateY, ChannelTranslateZ,
	ChannelRotateX, ChannelRotateY, ChannelRotateZ,
	ChannelScaleX, ChannelScaleY, ChannelScaleZ,
}

// Joint is one transform node in a rig hierarchy.
type Joint struct {
	Name   string
	Parent string // empty for the root

	rest    map[string]float64
	current map[string]float64
}

// NewJoint builds a joint with the given rest values. Unspecified transform
// channels default to identity (zero translate/rotate, unit scale); extra
// keys become custom attribute channels.
func NewJoint(name, parent string, rest map[string]float64) *Joint {
	j := &Joint{
		Name:    name,
		Parent:  parent,
		rest:    make(map[string]float64, len(rest)+len(TransformChannels)),
		current: make(map[string]float64, len(rest)+len(TransformChannels)),
	}
	for _, ch := range TransformChannels {
		j.rest[ch] = 0
	}
	j.rest[ChannelScaleX] = 1
	j.rest[ChannelScaleY] = 1
	j.rest[ChannelScaleZ] = 1
	for ch, v := range rest {
		j.rest[ch] = v
	}
	for ch, v := range j.rest {
		j.current[ch] = v
	}
	return j
}

// Channels returns the joint's channel names in sorted order.
func (j *Joint) Channels() []string {
	names := make([]string, 0, len(j.current))
	for ch := range j.current {
		names = append(names, ch)
	}
	sort.Strings(names)
	return names
}

// Value returns the joint's current value for a channel.
func (j *Joint) Value(channel string) (float64, bool) {
	v, ok := j.current[channel]
	return v, ok
}

// Rest returns the joint's rest value for a channel.
func (j *Joint) Rest(channel string) (float64, bool) {
	v, ok := j.rest[channel]
	return v, ok
}

// Set writes a channel value, creating the channel when unknown.
func (j *Joint) Set(channel string, value float64) {
	j.current[channel] = value
}

// Rig is one swappable rig variant.
type Rig struct {
	id        string
	root      string
	namespace string

	joints map[string]*Joint
	order  []string

	visible bool
}

// New assembles a rig from its joints. Joint order is preserved for stable
// iteration. Parent links must resolve within the rig.
func New(id, root, namespace string, joints []*Joint) (*Rig, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("rig id is required")
	}
	r := &Rig{
		id:        id,
		root:      root,
		namespace: namespace,
		joints:    make(map[string]*Joint, len(joints)),
	}
	for _, joint := range joints {
		if joint == nil || strings.TrimSpace(joint.Name) == "" {
			return nil, fmt.Errorf("rig %s: joint without a name", id)
		}
		if _, exists := r.joints[joint.Name]; exists {
			return nil, fmt.Errorf("rig %s: duplicate joint %q", id, joint.Name)
		}
		r.joints[joint.Name] = joint
		r.order = append(r.order, joint.Name)
	}
	for _, joint := range joints {
		if joint.Parent == "" {
			continue
		}
		if _, ok := r.joints[joint.Parent]; !ok {
			return nil, fmt.Errorf("rig %s: joint %q references unknown parent %q", id, joint.Name, joint.Parent)
		}
	}
	return r, nil
}

// ID returns the rig identifier from the definition table.
func (r *Rig) ID() string { return r.id }

// Root returns the host node path at the root of this variant.
func (r *Rig) Root() string { return r.root }

// Namespace returns the namespace the variant's nodes live under.
func (r *Rig) Namespace() string { return r.namespace }

// JointNames returns joint names in declaration order.
func (r *Rig) JointNames() []string {
	return append([]string(nil), r.order...)
}

// Joint returns a joint by name.
func (r *Rig) Joint(name string) (*Joint, bool) {
	j, ok := r.joints[name]
	return j, ok
}

// JointCount returns the number of joints in the hierarchy.
func (r *Rig) JointCount() int { return len(r.joints) }

// Visible reports whether the rig currently drives the character.
func (r *Rig) Visible() bool { return r.visible }

// SetVisible toggles the rig's visibility flag.
func (r *Rig) SetVisible(visible bool) { r.visible = visible }

// ResetToRest restores every joint to its rest values.
func (r *Rig) ResetToRest() {
	for _, name := range r.order {
		j := r.joints[name]
		for ch, v := range j.rest {
			j.current[ch] = v
		}
	}
}
