package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// Descriptor is the <navigation> element configuration read once at construction.
type Descriptor struct {
	// Mode is the navigation mode: ego, walk, examine, trackball or none.
	Mode string `json:"mode" yaml:"mode" toml:"mode"`
	// RevolveAround is the initial pivot as an XML3D vector string.
	RevolveAround string `json:"revolveAround" yaml:"revolveAround" toml:"revolveAround"`
	// ResolveAround is the obsolete spelling of RevolveAround.
	ResolveAround string `json:"resolveAround" yaml:"resolveAround" toml:"resolveAround"`
	// Speed multiplies the zoom/dolly sensitivity; 0 leaves it unchanged.
	Speed float64 `json:"speed" yaml:"speed" toml:"speed"`
}

// settings is the resolved form of a Descriptor.
type settings struct {
	mode        Mode
	pivot       mgl64.Vec3
	hasPivot    bool
	speedFactor float64
}

// resolve validates the descriptor. Malformed pivots are logged and ignored;
// unknown modes fall back to examine.
func (d Descriptor) resolve() settings {
	s := settings{mode: ParseMode(d.Mode), speedFactor: 1}

	if d.ResolveAround != "" {
		log.Warn("resolveAround is obsolete, use revolveAround instead")
		if p, err := common.ParseVec3(d.ResolveAround); err == nil {
			s.pivot, s.hasPivot = p, true
		} else {
			log.Warn("ignoring navigation pivot", "attribute", "resolveAround", "error", err)
		}
	}
	if d.RevolveAround != "" {
		if p, err := common.ParseVec3(d.RevolveAround); err == nil {
			s.pivot, s.hasPivot = p, true
		} else {
			log.Warn("ignoring navigation pivot", "attribute", "revolveAround", "error", err)
		}
	}
	if d.Speed > 0 {
		s.speedFactor = d.Speed
	}
	return s
}
