package scene

// Document mirrors the TOML scene file structure before validation.
type Document struct {
	Name     string       `toml:"name"`
	Timeline TimelineDoc  `toml:"timeline"`
	Rigs     []RigDoc     `toml:"rigs"`
	Table    []Definition `toml:"definitions"`
}

// TimelineDoc overrides playback settings from the config. Zero values
// inherit the configured defaults.
type TimelineDoc struct {
	FrameRate  float64 `toml:"frame_rate"`
	StartFrame float64 `toml:"start_frame"`
	EndFrame   float64 `toml:"end_frame"`
}

// RigDoc declares one rig variant.
type RigDoc struct {
	ID     string     `toml:"id"`
	Root   string     `toml:"root"`
	Joints []JointDoc `toml:"joints"`
	Curves []CurveDoc `toml:"curves"`
}

// JointDoc declares one joint. Rest holds channel values; unspecified
// transform channels default to identity.
type JointDoc struct {
	Name   string             `toml:"name"`
	Parent string             `toml:"parent"`
	Rest   map[string]float64 `toml:"rest"`
}

// CurveDoc declares one keyframe curve as [frame, value] pairs.
type CurveDoc struct {
	Joint         string      `toml:"joint"`
	Channel       string      `toml:"channel"`
	Interpolation string      `toml:"interpolation"`
	Keys          [][]float64 `toml:"keys"`
}

// Definition is one entry of the rig definition table.
type Definition struct {
	Frame float64 `toml:"frame"`
	Rig   string  `toml:"rig"`
}
