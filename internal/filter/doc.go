// Package filter provides the CPU reference implementations of the depth
// of field blurs:
//   - Gaussian: separable two-pass blur with transparent or clamped edges
//   - LensBlur: golden-angle disc sampling matching shaders/lens_blur.wgsl
//
// Images are premultiplied *image.RGBA values sharing one coordinate space;
// dst bounds select the region written, src bounds the region read.
package filter
