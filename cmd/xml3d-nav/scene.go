package main

import (
	"github.com/ksons/xml3d-blender-exporter/engine/loader"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/scene"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
)

// openScene loads a scene document and builds a controller for its active view
// bound to surface. The document's <navigation> settings win over the config.
func openScene(path string, surface window.Surface, defaults navigation.Descriptor) (*loader.Document, scene.Scene, navigation.Controller, error) {
	doc, err := loader.NewLoader().Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	sc, err := doc.Build(scene.WithSize(surface.Width(), surface.Height()))
	if err != nil {
		return nil, nil, nil, err
	}

	ctrl, err := navigation.NewController(sc, surface, navigation.WithDescriptor(resolveDescriptor(doc.Navigation, defaults)))
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, sc, ctrl, nil
}

// resolveDescriptor returns doc when it sets anything, defaults otherwise.
func resolveDescriptor(doc, defaults navigation.Descriptor) navigation.Descriptor {
	if doc == (navigation.Descriptor{}) {
		return defaults
	}
	return doc
}
