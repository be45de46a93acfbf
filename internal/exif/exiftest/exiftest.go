// Package exiftest builds small JPEG Exif fixtures for tests.
package exiftest

import (
	"encoding/binary"
)

// App1 returns a complete APP1 segment (marker included) whose IFD0 holds a
// Make entry followed by an Orientation entry with value o.
func App1(order binary.AppendByteOrder, o uint16) []byte {
	tiff := make([]byte, 0, 64)
	if order == binary.LittleEndian {
		tiff = append(tiff, 'I', 'I')
	} else {
		tiff = append(tiff, 'M', 'M')
	}
	tiff = order.AppendUint16(tiff, 42)
	tiff = order.AppendUint32(tiff, 8)

	tiff = order.AppendUint16(tiff, 2)
	// Make, ASCII, 4 bytes inline
	tiff = order.AppendUint16(tiff, 0x010F)
	tiff = order.AppendUint16(tiff, 2)
	tiff = order.AppendUint32(tiff, 4)
	tiff = append(tiff, 'C', 'a', 'm', 0)
	// Orientation, SHORT, 1 value inline
	tiff = order.AppendUint16(tiff, 0x0112)
	tiff = order.AppendUint16(tiff, 3)
	tiff = order.AppendUint32(tiff, 1)
	tiff = order.AppendUint16(tiff, o)
	tiff = append(tiff, 0, 0)
	// no next IFD
	tiff = order.AppendUint32(tiff, 0)

	body := append([]byte("Exif\x00\x00"), tiff...)
	seg := []byte{0xFF, 0xE1}
	seg = binary.BigEndian.AppendUint16(seg, uint16(len(body)+2))
	return append(seg, body...)
}

// JFIF returns a minimal APP0 segment.
func JFIF() []byte {
	return []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
	}
}

// Inject splices an Exif APP1 segment right after the SOI marker of jpegData.
func Inject(jpegData []byte, order binary.AppendByteOrder, o uint16) []byte {
	out := make([]byte, 0, len(jpegData)+64)
	out = append(out, jpegData[:2]...)
	out = append(out, App1(order, o)...)
	return append(out, jpegData[2:]...)
}

// Minimal returns a syntactically plausible JPEG header stream carrying
// orientation o: SOI, APP0, APP1, SOS, EOI. It is not decodable as an image.
func Minimal(order binary.AppendByteOrder, o uint16) []byte {
	out := []byte{0xFF, 0xD8}
	out = append(out, JFIF()...)
	out = append(out, App1(order, o)...)
	out = append(out, 0xFF, 0xDA, 0x00, 0x02)
	return append(out, 0xFF, 0xD9)
}
