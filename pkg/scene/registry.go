package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	New         func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtins = map[string]SceneInfo{
	"default":     {Name: "default", Description: "Spheres of every material on a ground plane", New: NewDefaultScene},
	"cornell":     {Name: "cornell", Description: "Cornell box with blocks and a glass ball", New: NewCornellScene},
	"motion-blur": {Name: "motion-blur", Description: "Moving spheres with an open shutter", New: NewMotionBlurScene},
	"shell":       {Name: "shell", Description: "Hollow glass balls of increasing IOR", New: NewShellScene},
	"spheregrid":  {Name: "spheregrid", Description: "Grid of spheres sweeping hue and roughness", New: NewSphereGridScene},
	"empty":       {Name: "empty", Description: "Sky only", New: NewEmptyScene},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, info := range builtins {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Load builds the named scene and preprocesses it
func Load(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}

	s := info.New(cameraOverrides...)
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene %q: %w", name, err)
	}
	return s, nil
}
