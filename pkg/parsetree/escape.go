package parsetree

import (
	"fmt"
	"io"
)

// escapeTable classifies every 7-bit byte for string emission. An entry of
// 1 means the byte passes through, 0 means it is written as \u00XX, and any
// other value is the second character of a two-character escape sequence.
// Bytes >= 0x80 always pass through; the source is assumed valid UTF-8.
var escapeTable = [128]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 'b', 't', 'n', 0, 'f', 'r', 0, 0, // 16
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 32
	1, 1, '"', 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 48
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 64
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 80
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, '\\', 1, 1, 1, // 96
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 112
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, // 128
}

// writeQuoted writes s as a quoted JSON string literal using the fixed
// escape classification above. Runs of passthrough bytes are written in
// one call.
func writeQuoted(w io.Writer, s string) error {
	if err := writeByteOut(w, '"'); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 || escapeTable[b] == 1 {
			continue
		}

		if start < i {
			if err := writeStringOut(w, s[start:i]); err != nil {
				return err
			}
		}
		start = i + 1

		if esc := escapeTable[b]; esc != 0 {
			if err := writeStringOut(w, string([]byte{'\\', esc})); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, `\u%04x`, b); err != nil {
			return err
		}
	}

	if start < len(s) {
		if err := writeStringOut(w, s[start:]); err != nil {
			return err
		}
	}

	return writeByteOut(w, '"')
}

func writeStringOut(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeByteOut(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}
