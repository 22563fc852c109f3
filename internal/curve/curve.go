package curve

import (
	"fmt"
	"sort"
	"strings"
)

// Interpolation selects how values between keys are computed.
type Interpolation string

const (
	// InterpStep holds each key's value until the next key.
	InterpStep Interpolation = "step"
	// InterpLinear blends linearly between adjacent keys.
	InterpLinear Interpolation = "linear"
)

// ParseInterpolation validates an interpolation name. Empty defaults to linear.
func ParseInterpolation(value string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(InterpLinear):
		return InterpLinear, nil
	case string(InterpStep):
		return InterpStep, nil
	default:
		return "", fmt.Errorf("unknown interpolation %q", value)
	}
}

// Key is a single keyframe.
type Key struct {
	Frame float64
	Value float64
}

// Curve is a keyframe curve for one channel of one joint.
type Curve struct {
	Joint   string
	Channel string
	Interp  Interpolation

	keys []Key
}

// New builds a curve from keys. Keys are sorted by frame; duplicate frames
// are rejected because the host cannot hold two keys at one time.
func New(joint, channel string, interp Interpolation, keys []Key) (*Curve, error) {
	if strings.TrimSpace(joint) == "" || strings.TrimSpace(channel) == "" {
		return nil, fmt.Errorf("curve requires joint and channel")
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("curve %s.%s has no keys", joint, channel)
	}
	sorted := append([]Key(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Frame == sorted[i-1].Frame {
			return nil, fmt.Errorf("curve %s.%s has duplicate key at frame %v", joint, channel, sorted[i].Frame)
		}
	}
	if interp == "" {
		interp = InterpLinear
	}
	return &Curve{Joint: joint, Channel: channel, Interp: interp, keys: sorted}, nil
}

// Keys returns the sorted keyframes.
func (c *Curve) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Evaluate samples the curve at a frame. Values clamp to the first and last
// keys outside the keyed range.
func (c *Curve) Evaluate(frame float64) float64 {
	keys := c.keys
	if frame <= keys[0].Frame {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Value
	}

	// First key strictly after frame; the preceding key anchors the span.
	idx := sort.Search(len(keys), func(i int) bool { return keys[i].Frame > frame })
	prev := keys[idx-1]
	next := keys[idx]

	if c.Interp == InterpStep {
		return prev.Value
	}

	span := next.Frame - prev.Frame
	if span == 0 {
		return prev.Value
	}
	t := (frame - prev.Frame) / span
	return prev.Value + (next.Value-prev.Value)*t
}
