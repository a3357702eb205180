// Package textrender renders a finalized content.Content into the UTF-8
// text a caller actually wants to see, per one of four TextModes (spec.md
// §4.7): Plain concatenates each byte run transcoded under its own
// encoding marker; ECI additionally prefixes the symbology identifier and
// marks every encoding change with a `\NNNNNN` escape; HRI pretty-prints
// GS1 application identifiers and escapes non-graphical bytes; Escaped is
// HRI's escaping without the GS1 reformatting. Transcoding itself is the
// teacher's charset package (golang.org/x/text under the hood) — this
// package only decides which byte ranges get decoded under which ECI and
// how the result gets escaped, mirroring the split the teacher keeps
// between charset (transcoding) and per-symbology text assembly.
package textrender

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
)

// TextMode selects how Render turns a Content's bytes into text.
type TextMode int

const (
	Plain TextMode = iota
	ECI
	HRI
	Escaped
)

func (m TextMode) String() string {
	switch m {
	case Plain:
		return "Plain"
	case ECI:
		return "ECI"
	case HRI:
		return "HRI"
	case Escaped:
		return "Escaped"
	default:
		return "Unknown"
	}
}

// errNotFinalized is returned by Render on an unfinalized Content; run
// lengths (and therefore byte ranges per marker) aren't known until
// Content.Finalize has run.
var errNotFinalized = fmt.Errorf("textrender: content not finalized")

// Render renders c under the given mode.
func Render(c *content.Content, mode TextMode) (string, error) {
	if !c.Finalized() {
		return "", errNotFinalized
	}
	switch mode {
	case Plain:
		return renderPlain(c), nil
	case ECI:
		return renderECI(c), nil
	case HRI:
		return renderHRI(c), nil
	case Escaped:
		return renderEscaped(c), nil
	default:
		return "", fmt.Errorf("textrender: unknown TextMode %d", mode)
	}
}

// decodeRun transcodes bytes under eci to UTF-8, using GoName (the x/text
// codepage charset.DecodeBytes understands) if eci is non-nil.
func decodeRun(bytes []byte, eci *charset.ECI) string {
	name := ""
	if eci != nil {
		name = eci.GoName
	}
	return charset.DecodeBytes(bytes, name)
}

// runEnd clamps a marker's [BytePos, BytePos+Length) span to the actual
// byte slice length, defensive against a marker whose Length Finalize
// never got to recompute (a Content built outside the normal
// New->...->Finalize lifecycle).
func runEnd(bytes []byte, pos, length int) int {
	end := pos + length
	if end > len(bytes) || length <= 0 {
		end = len(bytes)
	}
	return end
}

// renderPlain decodes each byte run under its encoding marker and
// concatenates, ignoring ECI prefixes in the output (spec.md §4.7 Plain).
// A Content that never switched away from its default charset uses the
// encoding-guessing heuristic instead, per "Encoding guessing, when no ECI
// is known".
func renderPlain(c *content.Content) string {
	if !c.HasECI() {
		guessed := charset.GuessEncoding(c.Bytes, c.HintedCharset)
		return charset.DecodeBytes(c.Bytes, guessed)
	}
	var sb strings.Builder
	for _, m := range c.Encodings {
		end := runEnd(c.Bytes, m.BytePos, m.Length)
		if m.BytePos >= end {
			continue
		}
		sb.WriteString(decodeRun(c.Bytes[m.BytePos:end], m.ECI))
	}
	return sb.String()
}

// renderECI prefixes the symbology identifier and marks every encoding
// marker with its `\NNNNNN` ECI escape, doubling any literal backslash in
// the decoded text (spec.md §4.7 ECI).
func renderECI(c *content.Content) string {
	var sb strings.Builder
	sb.WriteString(c.Symbology.String())
	for _, m := range c.Encodings {
		end := runEnd(c.Bytes, m.BytePos, m.Length)
		if m.ECI != nil {
			fmt.Fprintf(&sb, "\\%06d", m.ECI.Value)
		}
		if m.BytePos >= end {
			continue
		}
		text := decodeRun(c.Bytes[m.BytePos:end], m.ECI)
		sb.WriteString(strings.ReplaceAll(text, "\\", "\\\\"))
	}
	return sb.String()
}

// renderHRI pretty-prints GS1 application identifiers for GS1 content,
// otherwise falls back to escaped plain text (spec.md §4.7 HRI). ISO-15434
// transport-envelope rendering is not implemented — no symbology in this
// module currently marks Content as ISO-15434, so there is nothing yet to
// dispatch on; see DESIGN.md.
func renderHRI(c *content.Content) string {
	if c.GS1 {
		return renderGS1HRI(c.Bytes)
	}
	return escapeControls(renderPlain(c))
}

// renderEscaped is HRI's control-character escaping without GS1
// reformatting (spec.md §4.7 Escaped).
func renderEscaped(c *content.Content) string {
	return escapeControls(renderPlain(c))
}

var controlNames = [...]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL", "BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB", "CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// escapeControls escapes non-graphical runes in angle-bracket mnemonics:
// named ASCII control codes as `<NAME>` (GS gets its own case since GS1
// data uses it as a field separator even outside the GS1 HRI path), and
// anything else non-printable as `<U+XX>` hex.
func escapeControls(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == 0x1D:
			sb.WriteString("<GS>")
		case r == 0x7F:
			sb.WriteString("<DEL>")
		case r >= 0 && r < 0x20:
			sb.WriteString("<" + controlNames[r] + ">")
		case !unicode.IsPrint(r):
			fmt.Fprintf(&sb, "<U+%X>", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
