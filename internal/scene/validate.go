package scene

import (
	"fmt"
	"strings"

	"mutablerig/internal/rig"
)

// validate checks document-level consistency that the rig and switcher
// constructors cannot see: duplicate rig ids, curves targeting joints or
// channels the rig never declares, and definition entries referencing
// unknown rigs.
func validate(doc *Document) error {
	if len(doc.Rigs) == 0 {
		return fmt.Errorf("scene declares no rigs")
	}

	rigIDs := make(map[string]map[string]map[string]struct{}, len(doc.Rigs)) // rig id -> joint -> channels
	for _, rigDoc := range doc.Rigs {
		id := strings.TrimSpace(rigDoc.ID)
		if id == "" {
			return fmt.Errorf("rig without an id")
		}
		if _, exists := rigIDs[id]; exists {
			return fmt.Errorf("duplicate rig id %q", id)
		}
		if len(rigDoc.Joints) == 0 {
			return fmt.Errorf("rig %s declares no joints", id)
		}
		joints := make(map[string]map[string]struct{}, len(rigDoc.Joints))
		for _, jointDoc := range rigDoc.Joints {
			channels := make(map[string]struct{}, len(rig.TransformChannels)+len(jointDoc.Rest))
			for _, ch := range rig.TransformChannels {
				channels[ch] = struct{}{}
			}
			for ch := range jointDoc.Rest {
				channels[ch] = struct{}{}
			}
			joints[jointDoc.Name] = channels
		}
		rigIDs[id] = joints

		for _, curveDoc := range rigDoc.Curves {
			channels, ok := joints[curveDoc.Joint]
			if !ok {
				return fmt.Errorf("rig %s: curve targets unknown joint %q", id, curveDoc.Joint)
			}
			if strings.TrimSpace(curveDoc.Channel) == "" {
				return fmt.Errorf("rig %s: curve on joint %q has no channel", id, curveDoc.Joint)
			}
			if _, ok := channels[curveDoc.Channel]; !ok {
				return fmt.Errorf("rig %s: curve targets undeclared channel %q on joint %q",
					id, curveDoc.Channel, curveDoc.Joint)
			}
		}
	}

	if len(doc.Table) == 0 {
		return fmt.Errorf("scene declares no rig definitions")
	}
	for _, entry := range doc.Table {
		if _, ok := rigIDs[entry.Rig]; !ok {
			return fmt.Errorf("definition at frame %v references unknown rig %q", entry.Frame, entry.Rig)
		}
	}

	return nil
}
