package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels; height follows from AspectRatio
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane in focus, 0 = |LookAt - Center|
	ShutterOpen   float64   // Ray time at shutter open, within [0, 1]
	ShutterClose  float64   // Ray time at shutter close, within [0, 1]
}

// Camera generates primary rays with depth of field and motion blur
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Right, up and backward unit vectors
	lensRadius      float64
	width, height   int
}

// NewCamera creates a camera from the given configuration. Zero or invalid
// fields fall back to sensible defaults.
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = 40
	}
	if config.Width <= 0 {
		config.Width = 400
	}
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.LookAt == config.Center {
		config.LookAt = config.Center.Add(core.NewVec3(0, 0, -1))
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.LookAt.Subtract(config.Center).Length()
	}
	if config.ShutterClose < config.ShutterOpen {
		config.ShutterOpen, config.ShutterClose = config.ShutterClose, config.ShutterOpen
	}
	// Moving shapes only bound their motion over [0, 1]
	config.ShutterOpen = math.Min(1, math.Max(0, config.ShutterOpen))
	config.ShutterClose = math.Min(1, math.Max(0, config.ShutterClose))

	u, v, w := lookAtBasis(config.Center, config.LookAt, config.Up)

	theta := mgl64.DegToRad(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * config.FocusDistance
	viewportWidth := config.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      math.Max(0, config.Aperture) / 2,
		width:           config.Width,
		height:          max(1, int(float64(config.Width)/config.AspectRatio)),
	}
}

// lookAtBasis returns the right, up and backward vectors of a view looking
// from eye towards target
func lookAtBasis(eye, target, up core.Vec3) (core.Vec3, core.Vec3, core.Vec3) {
	forward := target.Subtract(eye).Normalize()
	if forward.Cross(up.Normalize()).LengthSquared() < 1e-12 {
		// Looking straight along up: pick any other up vector
		up = core.NewVec3(0, 0, 1)
		if math.Abs(forward.Z) > 0.9 {
			up = core.NewVec3(1, 0, 0)
		}
	}

	view := mgl64.LookAtV(toMgl(eye), toMgl(target), toMgl(up))
	return fromMgl(view.Row(0).Vec3()), fromMgl(view.Row(1).Vec3()), fromMgl(view.Row(2).Vec3())
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// GenerateRay creates the ray through viewport coordinates (s, t), where
// (0, 0) is the bottom-left corner. lensSample in [0,1)² picks the point on
// the lens and timeSample in [0,1) picks the moment within the shutter interval.
func (c *Camera) GenerateRay(s, t float64, lensSample core.Vec2, timeSample float64) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(lensSample).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	time := c.config.ShutterOpen + timeSample*(c.config.ShutterClose-c.config.ShutterOpen)

	return core.NewRayAtTime(origin, target.Subtract(origin), time)
}

// GetRay generates the ray through sub-pixel offset jitter of pixel (i, j)
// in a width×height image, with row 0 at the top. The lens and shutter
// samples are drawn from sampler.
func (c *Camera) GetRay(i, j, width, height int, jitter core.Vec2, sampler core.Sampler) core.Ray {
	s := (float64(i) + jitter.X) / float64(width)
	t := (float64(height-1-j) + jitter.Y) / float64(height)
	return c.GenerateRay(s, t, sampler.Get2D(), sampler.Get1D())
}

// Config returns the configuration the camera was built with, after defaults
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the image width implied by the camera configuration
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height implied by the camera configuration
func (c *Camera) Height() int {
	return c.height
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 {
		result.ShutterOpen = override.ShutterOpen
	}
	if override.ShutterClose != 0 {
		result.ShutterClose = override.ShutterClose
	}
	return result
}
