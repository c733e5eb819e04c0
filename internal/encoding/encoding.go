// Package encoding detects the Unicode encoding form of YAML input and
// decodes single UTF-8 code-unit sequences.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Form is a Unicode encoding form.
type Form int

const (
	Unknown Form = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

func (f Form) String() string {
	switch f {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case UTF32LE:
		return "UTF-32LE"
	case UTF32BE:
		return "UTF-32BE"
	default:
		return "unknown"
	}
}

// ReplacementChar is substituted for ill-formed sequences.
const ReplacementChar = '�'

// Sniff classifies the encoding form of b from its first bytes and reports
// the length of the byte order mark, which is 0 when the form was guessed
// from the position of zero bytes.
func Sniff(b []byte) (Form, int) {
	if len(b) == 0 {
		return Unknown, 0
	}
	switch b[0] {
	case 0x00:
		if len(b) >= 4 {
			if b[1] == 0 && b[2] == 0xFE && b[3] == 0xFF {
				return UTF32BE, 4
			}
			if b[1] == 0 && b[2] == 0 && b[3] != 0 {
				return UTF32BE, 0
			}
		}
		if len(b) >= 2 && b[1] != 0 {
			return UTF16BE, 0
		}
		return Unknown, 0
	case 0xFF:
		if len(b) >= 4 && b[1] == 0xFE && b[2] == 0 && b[3] == 0 {
			return UTF32LE, 4
		}
		if len(b) >= 2 && b[1] == 0xFE {
			return UTF16LE, 2
		}
		return Unknown, 0
	case 0xFE:
		if len(b) >= 2 && b[1] == 0xFF {
			return UTF16BE, 2
		}
		return Unknown, 0
	case 0xEF:
		if len(b) >= 3 && b[1] == 0xBB && b[2] == 0xBF {
			return UTF8, 3
		}
		return Unknown, 0
	}

	// No BOM. Zero bytes after the first one hint at a wider form.
	if len(b) >= 4 && b[1] == 0 && b[2] == 0 && b[3] == 0 {
		return UTF32LE, 0
	}
	if len(b) >= 2 && b[1] == 0 {
		return UTF16LE, 0
	}
	return UTF8, 0
}

// DecodeRune decodes the UTF-8 sequence at the start of b. A returned
// length of 0 means the sequence is ill-formed: truncated, overlong, a
// UTF-16 surrogate, or beyond U+10FFFF.
func DecodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	if b[0] < utf8.RuneSelf {
		return rune(b[0]), 1
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return 0, 0
	}
	return r, n
}

// AppendRune appends the UTF-8 encoding of r to dst. Invalid scalar values
// are written as ReplacementChar.
func AppendRune(dst []byte, r rune) []byte {
	return utf8.AppendRune(dst, r)
}

// ToUTF8 returns src as UTF-8 with any byte order mark removed, together
// with the detected form. UTF-8 input is returned without copying.
func ToUTF8(src []byte) ([]byte, Form, error) {
	form, bom := Sniff(src)
	var enc encoding.Encoding
	switch form {
	case UTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		enc = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		enc = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return src[bom:], form, nil
	}
	out, err := enc.NewDecoder().Bytes(src[bom:])
	if err != nil {
		return nil, form, err
	}
	return out, form, nil
}
