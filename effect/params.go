package effect

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ParameterBlockSize is the byte size of an encoded ParameterBlock.
// Must match the LensParams struct in shaders/lens_blur.wgsl.
const ParameterBlockSize = 16

// ParameterBlock is the lens kernel's constant buffer.
// Fields are tightly packed float32 values in declaration order.
type ParameterBlock struct {
	Radius       float32 // Blur radius in pixels
	Brightness   float32 // Highlight gain (1 = unchanged)
	EdgeStrength float32 // Bokeh rim emphasis
	Quality      float32 // Sample count along the disc
}

// DefaultParameterBlock returns the block a new lens node starts with: no
// blur, unit brightness, rim emphasis 2 and 16 samples.
func DefaultParameterBlock() ParameterBlock {
	return ParameterBlock{Brightness: 1, EdgeStrength: 2, Quality: 16}
}

// ParameterIndex identifies one slot of the ParameterBlock.
type ParameterIndex uint8

// Parameter slots, in buffer order.
const (
	ParamRadius ParameterIndex = iota
	ParamBrightness
	ParamEdgeStrength
	ParamQuality

	paramCount
)

// String returns the slot name.
func (i ParameterIndex) String() string {
	switch i {
	case ParamRadius:
		return "radius"
	case ParamBrightness:
		return "brightness"
	case ParamEdgeStrength:
		return "edge_strength"
	case ParamQuality:
		return "quality"
	default:
		return fmt.Sprintf("param(%d)", uint8(i))
	}
}

// Set writes v into slot i.
func (b *ParameterBlock) Set(i ParameterIndex, v float32) error {
	switch i {
	case ParamRadius:
		b.Radius = v
	case ParamBrightness:
		b.Brightness = v
	case ParamEdgeStrength:
		b.EdgeStrength = v
	case ParamQuality:
		b.Quality = v
	default:
		return fmt.Errorf("effect: %w: %v", ErrUnknownParameter, i)
	}
	return nil
}

// Get returns the value of slot i, or 0 for an unknown slot.
func (b *ParameterBlock) Get(i ParameterIndex) float32 {
	switch i {
	case ParamRadius:
		return b.Radius
	case ParamBrightness:
		return b.Brightness
	case ParamEdgeStrength:
		return b.EdgeStrength
	case ParamQuality:
		return b.Quality
	default:
		return 0
	}
}

// Bytes encodes the block as little-endian float32 values.
func (b *ParameterBlock) Bytes() []byte {
	buf := make([]byte, ParameterBlockSize)
	for i := ParameterIndex(0); i < paramCount; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(b.Get(i)))
	}
	return buf
}

// DecodeParameterBlock decodes a block produced by Bytes.
func DecodeParameterBlock(data []byte) (ParameterBlock, error) {
	var b ParameterBlock
	if len(data) < ParameterBlockSize {
		return b, fmt.Errorf("effect: parameter block too short: %d bytes", len(data))
	}
	for i := ParameterIndex(0); i < paramCount; i++ {
		_ = b.Set(i, math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
	}
	return b, nil
}
