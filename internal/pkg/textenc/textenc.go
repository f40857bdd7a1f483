// Package textenc normalizes the inconsistently-encoded time-tracking
// exports the ingestion pipeline receives. Files arrive as UTF-16 with or
// without BOM, Windows-1252, Latin-1 or plain UTF-8, sometimes with broken
// internal quoting.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Normalize decodes raw file bytes to UTF-8. It strips any byte-order mark,
// then tries decoders in priority order: utf-8, utf-16 (BOM-directed),
// utf-16-le, cp1252, latin1. If everything fails it degrades to lossy UTF-8
// with replacement runes. Normalize never fails; the second return value is
// the name of the encoding that was accepted, for logging.
func Normalize(data []byte) ([]byte, string) {
	if len(data) == 0 {
		return data, "utf-8"
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return Normalize(data[3:])
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		if decoded, err := decode(data[2:], unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)); err == nil {
			return decoded, "utf-16le"
		}
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		if decoded, err := decode(data[2:], unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)); err == nil {
			return decoded, "utf-16be"
		}
	}

	// Valid UTF-8 that contains NUL bytes is almost certainly BOM-less
	// UTF-16 over an ASCII-heavy export, so the NUL check runs first.
	if utf8.Valid(data) && !looksBinary(data) {
		return data, "utf-8"
	}

	// BOM-less UTF-16 LE exports are common from Windows time trackers.
	// An odd byte count rules UTF-16 out entirely.
	if len(data)%2 == 0 {
		if decoded, err := decode(data, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)); err == nil && utf8.Valid(decoded) && !looksBinary(decoded) {
			return decoded, "utf-16le"
		}
	}

	if decoded, err := decode(data, charmap.Windows1252); err == nil {
		return decoded, "cp1252"
	}

	if decoded, err := decode(data, charmap.ISO8859_1); err == nil {
		return decoded, "latin1"
	}

	// Last resort: lossy UTF-8, undecodable bytes become U+FFFD
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError))), "utf-8-lossy"
}

func decode(data []byte, enc encoding.Encoding) ([]byte, error) {
	return enc.NewDecoder().Bytes(data)
}

// looksBinary reports whether decoded text contains NUL bytes, which a
// misdetected UTF-16 pass over single-byte text produces.
func looksBinary(data []byte) bool {
	return bytes.IndexByte(data, 0x00) >= 0
}

// RepairQuotes is the opt-in repair step for CSVs whose fields carry stray
// internal quote characters. Per line it drops every quote that is not the
// first or last character, then wraps the whole line in a single quote pair.
// The transformation is destructive on field boundaries and must only be
// requested for files known to be malformed; on a line already in repaired
// form it is idempotent.
func RepairQuotes(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	repaired := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(line, `"`), `"`)
		inner = strings.ReplaceAll(inner, `"`, "")
		repaired = append(repaired, `"`+inner+`"`)
	}

	return []byte(strings.Join(repaired, "\n") + "\n")
}
