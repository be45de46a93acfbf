// Package exif reads the orientation tag out of a JPEG byte stream.
//
// Only the structure of the stream is inspected: marker segments are walked,
// the APP1 Exif block is located and IFD0 is scanned for tag 0x0112. Pixel
// data is never decoded. Anything unexpected, including truncated input,
// yields OrientationNormal.
package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Orientation is the EXIF orientation code (1..8).
type Orientation uint16

const (
	OrientationNormal      Orientation = 1 + iota // identity
	OrientationFlipH                              // mirror horizontal
	OrientationRotate180                          // rotate 180
	OrientationFlipV                              // mirror vertical
	OrientationTranspose                          // mirror horizontal + rotate 270 CW
	OrientationRotate90CW                         // rotate 90 CW
	OrientationTransverse                         // mirror horizontal + rotate 90 CW
	OrientationRotate90CCW                        // rotate 270 CW
)

// Valid reports whether o is one of the eight defined codes.
func (o Orientation) Valid() bool {
	return o >= OrientationNormal && o <= OrientationRotate90CCW
}

// Swapped reports whether applying o exchanges width and height.
func (o Orientation) Swapped() bool {
	return o >= OrientationTranspose && o <= OrientationRotate90CCW
}

func (o Orientation) String() string {
	switch o {
	case OrientationNormal:
		return "normal"
	case OrientationFlipH:
		return "flip-horizontal"
	case OrientationRotate180:
		return "rotate-180"
	case OrientationFlipV:
		return "flip-vertical"
	case OrientationTranspose:
		return "transpose"
	case OrientationRotate90CW:
		return "rotate-90-cw"
	case OrientationTransverse:
		return "transverse"
	case OrientationRotate90CCW:
		return "rotate-90-ccw"
	}
	return fmt.Sprintf("orientation(%d)", uint16(o))
}

const (
	markerSOI  = 0xFFD8
	markerAPP1 = 0xFFE1
	markerSOS  = 0xFFDA
	markerEOI  = 0xFFD9
	markerFill = 0xFFFF

	tagOrientation = 0x0112
	ifdEntrySize   = 12

	// "Exif\0\0" precedes the TIFF header inside APP1.
	exifHeaderSize = 6
)

var exifSignature = []byte("Exif")

// view is a bounds-checked reader over a byte slice.
type view struct {
	b     []byte
	order binary.ByteOrder
}

func (v view) u16(off int) (uint16, bool) {
	if off < 0 || off+2 > len(v.b) {
		return 0, false
	}
	return v.order.Uint16(v.b[off:]), true
}

func (v view) u32(off int) (uint32, bool) {
	if off < 0 || off+4 > len(v.b) {
		return 0, false
	}
	return v.order.Uint32(v.b[off:]), true
}

// ReadOrientation returns the orientation recorded in buf, or
// OrientationNormal when buf is not a JPEG, carries no Exif block, or is
// malformed in any way.
func ReadOrientation(buf []byte) Orientation {
	stream := view{b: buf, order: binary.BigEndian}
	if soi, ok := stream.u16(0); !ok || soi != markerSOI {
		return OrientationNormal
	}

	off := 2
	for {
		marker, ok := stream.u16(off)
		if !ok || marker&0xFF00 != 0xFF00 {
			return OrientationNormal
		}
		off += 2

		switch {
		case marker == markerFill:
			// fill byte, resync one byte further on
			off--
			continue
		case marker == markerSOS || marker == markerEOI:
			return OrientationNormal
		case marker >= 0xFFD0 && marker <= 0xFFD7:
			// RSTn carry no length
			continue
		}

		length, ok := stream.u16(off)
		if !ok || length < 2 {
			return OrientationNormal
		}
		if marker == markerAPP1 {
			end := off + int(length)
			if end > len(buf) {
				end = len(buf)
			}
			return readApp1(buf[off+2 : end])
		}
		off += int(length)
	}
}

func readApp1(seg []byte) Orientation {
	if len(seg) < exifHeaderSize || !bytes.Equal(seg[:len(exifSignature)], exifSignature) {
		return OrientationNormal
	}
	tiff := seg[exifHeaderSize:]
	if len(tiff) < 2 {
		return OrientationNormal
	}

	var order binary.ByteOrder
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	default:
		return OrientationNormal
	}
	v := view{b: tiff, order: order}

	ifd0, ok := v.u32(4)
	if !ok || int64(ifd0) >= int64(len(tiff)) {
		return OrientationNormal
	}
	off := int(ifd0)
	count, ok := v.u16(off)
	if !ok {
		return OrientationNormal
	}
	off += 2

	for i := 0; i < int(count); i++ {
		entry := off + i*ifdEntrySize
		tag, ok := v.u16(entry)
		if !ok {
			return OrientationNormal
		}
		if tag != tagOrientation {
			continue
		}
		val, ok := v.u16(entry + 8)
		if !ok {
			return OrientationNormal
		}
		if o := Orientation(val); o.Valid() {
			return o
		}
		return OrientationNormal
	}
	return OrientationNormal
}
