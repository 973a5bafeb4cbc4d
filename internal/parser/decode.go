package parser

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/unicode/norm"
)

// Encoding identifies how an export's bytes were decoded.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingEUCKR   Encoding = "euc-kr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectEncoding guesses the encoding of an export. Valid UTF-8 is only
// trusted when it contains at least one Hangul syllable; anything else is
// assumed to be the legacy Korean code page.
func DetectEncoding(data []byte) Encoding {
	if bytes.HasPrefix(data, utf8BOM) {
		return EncodingUTF8BOM
	}
	if utf8.Valid(data) && containsHangul(string(data)) {
		return EncodingUTF8
	}
	return EncodingEUCKR
}

// Decode converts raw export bytes to NFC-normalized text and reports the
// encoding that was actually used.
func Decode(data []byte) (string, Encoding) {
	enc := DetectEncoding(data)
	var text string

	switch enc {
	case EncodingUTF8BOM:
		text = string(data[len(utf8BOM):])
	case EncodingUTF8:
		text = string(data)
	default:
		text, enc = decodeLegacy(data)
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return norm.NFC.String(text), enc
}

// decodeLegacy tries CP949 first. Input that is valid UTF-8 but has no
// Hangul (an English-only chat, say) stays UTF-8 unless CP949 turns up
// Hangul.
func decodeLegacy(data []byte) (string, Encoding) {
	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err == nil && containsHangul(string(decoded)) {
		return string(decoded), EncodingEUCKR
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}
	if err == nil {
		return string(decoded), EncodingEUCKR
	}
	return string(data), EncodingUTF8
}

func containsHangul(s string) bool {
	for _, r := range s {
		if r >= '가' && r <= '힣' {
			return true
		}
	}
	return false
}
