package zxinggo_test

import (
	"testing"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/textrender"
)

func TestResultRenderTextFallsBackToTextWithoutContent(t *testing.T) {
	r := zxinggo.NewResult("hello", []byte("hello"), nil, zxinggo.FormatQRCode)

	got, err := r.RenderText(textrender.Plain)
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if got != "hello" {
		t.Errorf("RenderText() = %q, want %q", got, "hello")
	}
}

func TestResultRenderTextUsesContent(t *testing.T) {
	c := content.New(charset.ECIISO8859_1)
	c.AppendString("hi")
	c.Finalize()

	r := zxinggo.NewResult("hi", []byte("hi"), nil, zxinggo.FormatQRCode)
	r.Content = c

	got, err := r.RenderText(textrender.Plain)
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if got != "hi" {
		t.Errorf("RenderText() = %q, want %q", got, "hi")
	}
}

func TestResultTypedMetadataExtractsKnownKeys(t *testing.T) {
	r := zxinggo.NewResult("x", nil, nil, zxinggo.FormatDataMatrix)
	r.PutMetadata(zxinggo.MetadataErrorCorrectionLevel, "H")
	r.PutMetadata(zxinggo.MetadataErrorsCorrected, 3)
	r.PutMetadata(zxinggo.MetadataSymbologyIdentifier, "]d1")
	r.PutMetadata(zxinggo.MetadataStructuredAppendSequence, 2)
	r.PutMetadata(zxinggo.MetadataStructuredAppendParity, 7)

	m := r.TypedMetadata()
	if m.ErrorCorrectionLevel != "H" {
		t.Errorf("ErrorCorrectionLevel = %q, want %q", m.ErrorCorrectionLevel, "H")
	}
	if m.ErrorsCorrected != 3 {
		t.Errorf("ErrorsCorrected = %d, want 3", m.ErrorsCorrected)
	}
	if m.SymbologyIdentifier != "]d1" {
		t.Errorf("SymbologyIdentifier = %q, want %q", m.SymbologyIdentifier, "]d1")
	}
	if !m.HasStructuredAppend {
		t.Errorf("HasStructuredAppend = false, want true")
	}
	if m.StructuredAppendSequence != 2 || m.StructuredAppendParity != 7 {
		t.Errorf("structured append = %d/%d, want 2/7", m.StructuredAppendSequence, m.StructuredAppendParity)
	}
}

func TestResultTypedMetadataZeroValueWithoutKeys(t *testing.T) {
	r := zxinggo.NewResult("x", nil, nil, zxinggo.FormatCode128)

	m := r.TypedMetadata()
	if m.HasStructuredAppend {
		t.Errorf("HasStructuredAppend = true, want false")
	}
	if m.ErrorCorrectionLevel != "" || m.SymbologyIdentifier != "" {
		t.Errorf("expected zero-valued Metadata, got %+v", m)
	}
}
