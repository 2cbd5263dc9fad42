package schedule

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeResult is the outcome of a lossy UTF-16 decode. Replacements counts
// the units that could not be decoded, so callers can tell a clean decode
// from a degraded one.
type DecodeResult struct {
	Text         string
	Replacements int
}

// Lossy returns true when the decode substituted at least one unit.
func (r DecodeResult) Lossy() bool { return r.Replacements > 0 }

// DecodeUTF16 decodes raw bytes as UTF-16, honoring a BOM when present and
// assuming little-endian otherwise. Undecodable units are replaced, never
// raised.
func DecodeUTF16(raw []byte) DecodeResult {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		// The replacing decoder does not error on bad input; a failure here
		// means something other than the payload went wrong.
		return DecodeResult{}
	}
	text := string(out)
	return DecodeResult{
		Text:         text,
		Replacements: strings.Count(text, "�"),
	}
}

// StripPreamble drops everything before the first '{'. The upstream
// response sometimes carries non-JSON bytes ahead of the document; if no
// '{' exists the whole payload is preamble and the result is empty.
func StripPreamble(s string) string {
	idx := strings.IndexByte(s, '{')
	if idx < 0 {
		return ""
	}
	return s[idx:]
}
