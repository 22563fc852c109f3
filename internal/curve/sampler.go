package curve

import (
	"errors"
	"fmt"

	"mutablerig/internal/rig"
)

// ErrNotSettled reports that the host has not finished evaluating the scene
// at the requested frame. Callers retry on the next time-change event.
var ErrNotSettled = errors.New("curve evaluation not settled at requested frame")

// Set holds every curve authored for one rig, indexed by joint then channel.
type Set struct {
	curves map[string]map[string]*Curve
	count  int
}

// NewSet indexes curves by joint and channel. Two curves on the same channel
// are rejected.
func NewSet(curves []*Curve) (*Set, error) {
	s := &Set{curves: make(map[string]map[string]*Curve)}
	for _, c := range curves {
		if c == nil {
			continue
		}
		byChannel := s.curves[c.Joint]
		if byChannel == nil {
			byChannel = make(map[string]*Curve)
			s.curves[c.Joint] = byChannel
		}
		if _, exists := byChannel[c.Channel]; exists {
			return nil, fmt.Errorf("duplicate curve for %s.%s", c.Joint, c.Channel)
		}
		byChannel[c.Channel] = c
		s.count++
	}
	return s, nil
}

// Empty reports whether the set holds no curves.
func (s *Set) Empty() bool { return s == nil || s.count == 0 }

// Len returns the number of curves in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Lookup returns the curve for a joint channel.
func (s *Set) Lookup(joint, channel string) (*Curve, bool) {
	if s == nil {
		return nil, false
	}
	byChannel, ok := s.curves[joint]
	if !ok {
		return nil, false
	}
	c, ok := byChannel[channel]
	return c, ok
}

// Sampler builds rig poses by evaluating curve sets.
type Sampler struct {
	sets map[string]*Set // by rig id
}

// NewSampler indexes per-rig curve sets.
func NewSampler(sets map[string]*Set) *Sampler {
	if sets == nil {
		sets = make(map[string]*Set)
	}
	return &Sampler{sets: sets}
}

// Sample produces the pose of a rig at a frame. Keyed channels come from the
// rig's curves; everything else keeps the joint's current value. A rig with
// no curves at all yields its current state unchanged, the fallback for
// variants whose animation was never baked to curves.
func (s *Sampler) Sample(r *rig.Rig, frame float64) (rig.Pose, error) {
	if r == nil {
		return rig.Pose{}, errors.New("sample requires a rig")
	}
	pose := r.CapturePose(frame)

	set := s.sets[r.ID()]
	if set.Empty() {
		return pose, nil
	}

	for joint, values := range pose.Joints {
		for channel := range values {
			if c, ok := set.Lookup(joint, channel); ok {
				values[channel] = c.Evaluate(frame)
			}
		}
	}
	return pose, nil
}

// HasCurves reports whether a rig has any authored curves.
func (s *Sampler) HasCurves(rigID string) bool {
	return !s.sets[rigID].Empty()
}
