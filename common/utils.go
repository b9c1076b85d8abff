package common

import (
	"cmp"
	"unsafe"
)

// Clamp limits v to the closed range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// HexToRGB converts a 0xRRGGBB color to sRGB float components in [0, 1].
//
// Parameters:
//   - hex: the packed color value
//
// Returns:
//   - [3]float32: red, green and blue in [0, 1]
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}
