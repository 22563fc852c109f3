package scene

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"mutablerig/internal/curve"
	"mutablerig/internal/rig"
	"mutablerig/internal/switcher"
)

//go:embed sample_scene.toml
var sampleScene string

// Scene is the validated, assembled runtime form of a scene document.
type Scene struct {
	Name     string
	Path     string
	Timeline TimelineDoc

	rigs    map[string]*rig.Rig
	order   []string
	Sampler *curve.Sampler
	Table   *switcher.Table
}

// Load reads, parses, and assembles a scene document.
func Load(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer file.Close()

	var doc Document
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	scene, err := Build(&doc)
	if err != nil {
		return nil, err
	}
	scene.Path = path
	return scene, nil
}

// Build assembles and validates a parsed document.
func Build(doc *Document) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("scene document is nil")
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	scene := &Scene{
		Name:     strings.TrimSpace(doc.Name),
		Timeline: doc.Timeline,
		rigs:     make(map[string]*rig.Rig, len(doc.Rigs)),
	}
	if scene.Name == "" {
		scene.Name = "untitled"
	}

	sets := make(map[string]*curve.Set, len(doc.Rigs))
	for i, rigDoc := range doc.Rigs {
		built, err := buildRig(rigDoc, i)
		if err != nil {
			return nil, err
		}
		scene.rigs[built.ID()] = built
		scene.order = append(scene.order, built.ID())

		set, err := buildCurves(rigDoc)
		if err != nil {
			return nil, err
		}
		sets[built.ID()] = set
	}
	scene.Sampler = curve.NewSampler(sets)

	defs := make([]switcher.Definition, 0, len(doc.Table))
	for _, entry := range doc.Table {
		defs = append(defs, switcher.Definition{Frame: entry.Frame, RigID: entry.Rig})
	}
	table, err := switcher.NewTable(defs)
	if err != nil {
		return nil, err
	}
	scene.Table = table

	return scene, nil
}

func buildRig(doc RigDoc, index int) (*rig.Rig, error) {
	joints := make([]*rig.Joint, 0, len(doc.Joints))
	for _, jointDoc := range doc.Joints {
		joints = append(joints, rig.NewJoint(jointDoc.Name, jointDoc.Parent, jointDoc.Rest))
	}
	// Namespace follows the host convention: root path with separators
	// flattened plus the definition index.
	namespace := fmt.Sprintf("%s%d", strings.ReplaceAll(doc.Root, "|", "_"), index)
	return rig.New(doc.ID, doc.Root, namespace, joints)
}

func buildCurves(doc RigDoc) (*curve.Set, error) {
	curves := make([]*curve.Curve, 0, len(doc.Curves))
	for _, curveDoc := range doc.Curves {
		interp, err := curve.ParseInterpolation(curveDoc.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("rig %s: curve %s.%s: %w", doc.ID, curveDoc.Joint, curveDoc.Channel, err)
		}
		keys := make([]curve.Key, 0, len(curveDoc.Keys))
		for _, pair := range curveDoc.Keys {
			if len(pair) != 2 {
				return nil, fmt.Errorf("rig %s: curve %s.%s: key must be [frame, value], got %v",
					doc.ID, curveDoc.Joint, curveDoc.Channel, pair)
			}
			keys = append(keys, curve.Key{Frame: pair[0], Value: pair[1]})
		}
		c, err := curve.New(curveDoc.Joint, curveDoc.Channel, interp, keys)
		if err != nil {
			return nil, fmt.Errorf("rig %s: %w", doc.ID, err)
		}
		curves = append(curves, c)
	}
	return curve.NewSet(curves)
}

// Rig returns a rig variant by identifier.
func (s *Scene) Rig(id string) (*rig.Rig, bool) {
	r, ok := s.rigs[id]
	return r, ok
}

// RigIDs returns rig identifiers in declaration order.
func (s *Scene) RigIDs() []string {
	return append([]string(nil), s.order...)
}

// RigCount returns the number of rig variants.
func (s *Scene) RigCount() int { return len(s.rigs) }

// CreateSample writes the embedded sample scene to the given path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scene directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleScene), 0o644); err != nil {
		return fmt.Errorf("write sample scene: %w", err)
	}
	return nil
}
