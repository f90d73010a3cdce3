// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import "encoding/binary"

// CBOR major types (RFC 8949 §3.1), pre-shifted into the high three
// bits of the initial byte.
const (
	majorUnsigned byte = 0 << 5
	majorNegative byte = 1 << 5
	majorBytes    byte = 2 << 5
	majorText     byte = 3 << 5
	majorArray    byte = 4 << 5
	majorMap      byte = 5 << 5
	majorTag      byte = 6 << 5
	majorSimple   byte = 7 << 5

	majorMask byte = 0xe0
	infoMask  byte = 0x1f
)

// Additional information values with special meaning.
const (
	infoUint8      byte = 24
	infoUint16     byte = 25
	infoUint32     byte = 26
	infoUint64     byte = 27
	infoIndefinite byte = 31
)

// Simple values and float initial bytes (major type 7).
const (
	simpleFalse     byte = 0xf4
	simpleTrue      byte = 0xf5
	simpleNull      byte = 0xf6
	simpleUndefined byte = 0xf7
	floatHalf       byte = 0xf9
	floatSingle     byte = 0xfa
	floatDouble     byte = 0xfb
)

// TagCID is the CBOR tag number for IPLD content identifiers.
const TagCID uint64 = 42

// appendHeader appends the shortest initial byte and argument for
// major type major carrying arg.
func appendHeader(buf []byte, major byte, arg uint64) []byte {
	switch {
	case arg < uint64(infoUint8):
		return append(buf, major|byte(arg))
	case arg <= 0xff:
		return append(buf, major|infoUint8, byte(arg))
	case arg <= 0xffff:
		buf = append(buf, major|infoUint16)
		return binary.BigEndian.AppendUint16(buf, uint16(arg))
	case arg <= 0xffffffff:
		buf = append(buf, major|infoUint32)
		return binary.BigEndian.AppendUint32(buf, uint32(arg))
	default:
		buf = append(buf, major|infoUint64)
		return binary.BigEndian.AppendUint64(buf, arg)
	}
}

// argumentWidth returns the number of argument bytes that follow an
// initial byte with additional information info, or -1 if info is not
// a fixed-width argument (reserved values and the indefinite marker).
func argumentWidth(info byte) int {
	switch {
	case info < infoUint8:
		return 0
	case info == infoUint8:
		return 1
	case info == infoUint16:
		return 2
	case info == infoUint32:
		return 4
	case info == infoUint64:
		return 8
	default:
		return -1
	}
}

// minimalFor reports whether arg, carried in width bytes, could not
// have been carried in fewer.
func minimalFor(width int, arg uint64) bool {
	switch width {
	case 0:
		return true
	case 1:
		return arg >= uint64(infoUint8)
	case 2:
		return arg > 0xff
	case 4:
		return arg > 0xffff
	default:
		return arg > 0xffffffff
	}
}
