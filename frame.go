package dof

// DrawDescription is the host's description of how an item is drawn this
// frame. The processor reads it and hands it back unchanged.
type DrawDescription struct {
	// Draw is the item's world-space position.
	Draw Vec3

	// Camera is the scene camera (view) transform.
	Camera Mat4

	// Rotation is the item's rotation in degrees around each axis.
	Rotation Vec3

	// Zoom is the item's uniform scale (1 = 100%).
	Zoom float64

	// Opacity is the item's opacity in [0, 1].
	Opacity float64
}

// EffectDescription is the per-frame input the host supplies to Update.
type EffectDescription struct {
	// ItemFrame is the frame index relative to the item's start.
	ItemFrame int64

	// ItemLength is the item duration in frames.
	ItemLength int64

	// FPS is the project frame rate.
	FPS float64

	Draw DrawDescription
}

// FrameContext is the transient per-frame state derived from an
// EffectDescription. It is rebuilt on every Update and never retained.
type FrameContext struct {
	FrameIndex   int64
	TotalFrames  int64
	FPS          float64
	Camera       Mat4
	ItemPosition Vec3
}

// Frame returns the FrameContext for this description.
func (d EffectDescription) Frame() FrameContext {
	return FrameContext{
		FrameIndex:   d.ItemFrame,
		TotalFrames:  d.ItemLength,
		FPS:          d.FPS,
		Camera:       d.Draw.Camera,
		ItemPosition: d.Draw.Draw,
	}
}
