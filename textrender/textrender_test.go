package textrender

import (
	"strings"
	"testing"

	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/symid"
)

func buildAsciiContent(t *testing.T, text string) *content.Content {
	t.Helper()
	c := content.New(charset.ECIISO8859_1)
	c.SetSegmentType(content.SegmentAlphanumeric)
	c.AppendString(text)
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return c
}

func TestRenderPlainSingleEncoding(t *testing.T) {
	c := buildAsciiContent(t, "HELLO")
	got, err := Render(c, Plain)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "HELLO" {
		t.Errorf("got %q, want %q", got, "HELLO")
	}
}

func TestRenderPlainMultipleEncodings(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.AppendString("AB")
	c.SwitchECI(charset.ECIUTF8)
	c.AppendString("CD")
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, Plain)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "ABCD" {
		t.Errorf("got %q, want %q", got, "ABCD")
	}
}

func TestRenderECIPrefixesSymbologyAndEscapesChanges(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.Symbology = symid.Identifier{Code: symid.QRCode, Modifier: 1}
	c.AppendString("AB")
	c.SwitchECI(charset.ECIUTF8)
	c.AppendString("CD")
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, ECI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(got, "]Q1") {
		t.Errorf("expected ECI text to start with symbology identifier, got %q", got)
	}
	if !strings.Contains(got, "AB") || !strings.Contains(got, "CD") {
		t.Errorf("expected both runs present, got %q", got)
	}
}

func TestRenderECIEscapesLiteralBackslash(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.AppendString(`a\b`)
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, ECI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, `a\\b`) {
		t.Errorf("expected literal backslash doubled, got %q", got)
	}
}

func TestRenderEscapedMarksControlCharacters(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.Push(0x1D) // GS
	c.Push('A')
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, Escaped)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "<GS>A" {
		t.Errorf("got %q, want %q", got, "<GS>A")
	}
}

func TestRenderHRIPrettyPrintsGS1(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.GS1 = true
	c.AppendString("0112345678901231")
	c.Push(0x1D)
	c.AppendString("10ABC123")
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, HRI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "(01)12345678901231(10)ABC123"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderHRINonGS1FallsBackToEscaped(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.Push(0x1D)
	c.AppendString("plain")
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got, err := Render(c, HRI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "<GS>plain" {
		t.Errorf("got %q, want %q", got, "<GS>plain")
	}
}

func TestRenderRejectsUnfinalizedContent(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.AppendString("x")
	if _, err := Render(c, Plain); err == nil {
		t.Error("expected error rendering unfinalized content")
	}
}
