package rig

import "sort"

// Pose is a snapshot of channel values for every joint of a rig at one
// instant. It exists only for the duration of a transfer; the journal keeps
// a serialized copy for audit.
type Pose struct {
	Rig    string                        `json:"rig"`
	Frame  float64                       `json:"frame"`
	Joints map[string]map[string]float64 `json:"joints"`
}

// ApplyResult reports what a pose application touched.
type ApplyResult struct {
	AppliedJoints  int
	AppliedValues  int
	MissingJoints  []string // pose joints absent from the target rig
	UntouchedCount int      // target joints the pose did not mention
}

// CapturePose snapshots the rig's current channel values.
func (r *Rig) CapturePose(frame float64) Pose {
	pose := Pose{
		Rig:    r.id,
		Frame:  frame,
		Joints: make(map[string]map[string]float64, len(r.order)),
	}
	for _, name := range r.order {
		j := r.joints[name]
		values := make(map[string]float64, len(j.current))
		for ch, v := range j.current {
			values[ch] = v
		}
		pose.Joints[name] = values
	}
	return pose
}

// ApplyPose writes a pose's values onto matching joints. Joints present only
// in the pose are skipped and reported; joints present only on the rig keep
// their current values.
func (r *Rig) ApplyPose(pose Pose) ApplyResult {
	result := ApplyResult{}
	for name, values := range pose.Joints {
		target, ok := r.joints[name]
		if !ok {
			result.MissingJoints = append(result.MissingJoints, name)
			continue
		}
		result.AppliedJoints++
		for ch, v := range values {
			target.current[ch] = v
			result.AppliedValues++
		}
	}
	sort.Strings(result.MissingJoints)
	result.UntouchedCount = len(r.joints) - result.AppliedJoints
	return result
}
