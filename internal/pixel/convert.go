// Package pixel converts CPU texture data into layouts the GPU accepts and
// builds mip chains for it.
package pixel

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrDataSize is returned when pixel data does not match the dimensions.
var ErrDataSize = errors.New("pixel: data size mismatch")

// RGB888ToRGBA8 expands tightly packed RGB to RGBA with opaque alpha.
func RGB888ToRGBA8(src []byte, width, height int) ([]byte, error) {
	n := width * height
	if len(src) < n*3 {
		return nil, fmt.Errorf("%w: RGB888 %dx%d needs %d bytes, got %d", ErrDataSize, width, height, n*3, len(src))
	}
	dst := make([]byte, n*4)
	for i := 0; i < n; i++ {
		dst[i*4+0] = src[i*3+0]
		dst[i*4+1] = src[i*3+1]
		dst[i*4+2] = src[i*3+2]
		dst[i*4+3] = 0xFF
	}
	return dst, nil
}

// RGBA4444ToRGBA8 expands little-endian 4:4:4:4 pixels (R in the high
// nibble) to 8 bits per channel.
func RGBA4444ToRGBA8(src []byte, width, height int) ([]byte, error) {
	n := width * height
	if len(src) < n*2 {
		return nil, fmt.Errorf("%w: RGBA4444 %dx%d needs %d bytes, got %d", ErrDataSize, width, height, n*2, len(src))
	}
	dst := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(src[i*2:])
		dst[i*4+0] = expand4(uint8(v >> 12))
		dst[i*4+1] = expand4(uint8(v >> 8))
		dst[i*4+2] = expand4(uint8(v >> 4))
		dst[i*4+3] = expand4(uint8(v))
	}
	return dst, nil
}

// RGB565ToRGBA8 expands little-endian 5:6:5 pixels (R in the high bits) to
// RGBA with opaque alpha.
func RGB565ToRGBA8(src []byte, width, height int) ([]byte, error) {
	n := width * height
	if len(src) < n*2 {
		return nil, fmt.Errorf("%w: RGB565 %dx%d needs %d bytes, got %d", ErrDataSize, width, height, n*2, len(src))
	}
	dst := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(src[i*2:])
		r := uint8(v>>11) & 0x1F
		g := uint8(v>>5) & 0x3F
		b := uint8(v) & 0x1F
		dst[i*4+0] = r<<3 | r>>2
		dst[i*4+1] = g<<2 | g>>4
		dst[i*4+2] = b<<3 | b>>2
		dst[i*4+3] = 0xFF
	}
	return dst, nil
}

func expand4(v uint8) uint8 {
	v &= 0x0F
	return v<<4 | v
}
