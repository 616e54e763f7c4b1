package dof

import "math"

// EyeOffset is the distance, along the camera's local Z axis, of the eye
// point from the camera origin. Items placed at the world origin with an
// identity camera are EyeOffset units away from the eye.
const EyeOffset = 1000

// EvaluateDistance returns the distance between the camera eye and an item.
//
// The camera transform is inverted to recover the eye position in world
// space; a non-invertible camera is treated as the identity (camera at the
// origin, no rotation). In FocusSpherical mode the result is the Euclidean
// distance. In FocusPlanar mode it is the depth of the item along the
// camera's forward axis, which ignores lateral offset.
//
// The result is never negative.
func EvaluateDistance(camera Mat4, item Vec3, mode FocusMode) float64 {
	inv, ok := camera.Invert()
	if !ok {
		Logger().Debug("dof: camera transform not invertible, using identity")
	}

	eye := inv.TransformPoint(Vec3{Z: EyeOffset})

	if mode == FocusSpherical {
		return eye.Distance(item)
	}

	forward := inv.Row3().Neg().Normalize()
	return math.Abs(item.Sub(eye).Dot(forward))
}
