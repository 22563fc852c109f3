// Package scene loads the TOML scene document that stands in for the host
// application's scene file.
//
// A document declares the rig variants (joints, rest values), the animation
// curves authored for each variant, the rig definition table, and optional
// timeline overrides. Load parses, validates, and assembles the runtime
// Scene: rig hierarchies, an indexed curve sampler, and the validated
// definition table. Malformed documents fail here, before any session or
// controller exists, so switching never starts from bad configuration.
package scene
