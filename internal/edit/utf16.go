package edit

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Browser hosts report offsets in UTF-16 code units; the processor works in
// bytes. These convert at that boundary.

// UTF16ToByte converts a UTF-16 offset into text to a byte offset, clamping
// to the buffer. An offset inside a surrogate pair maps to the rune start.
func UTF16ToByte(text string, u int) int {
	units := 0
	for i, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > u {
			return i
		}
		units += n
	}
	return len(text)
}

// ByteToUTF16 converts a byte offset into text to a UTF-16 offset.
func ByteToUTF16(text string, b int) int {
	if b > len(text) {
		b = len(text)
	}
	units := 0
	for i := 0; i < b; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > b {
			break
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
		i += size
	}
	return units
}
