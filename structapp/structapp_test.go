package structapp

import (
	"errors"
	"strconv"
	"testing"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
)

func buildContent(t *testing.T, text string) *content.Content {
	t.Helper()
	c := content.New(charset.ECIISO8859_1)
	c.SetSegmentType(content.SegmentAlphanumeric)
	c.AppendString(text)
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return c
}

func TestGroupMergesInIndexOrder(t *testing.T) {
	members := []Member{
		{Info: SequenceInfo{GroupID: "g1", Index: 1, Total: 2}, Content: buildContent(t, "World")},
		{Info: SequenceInfo{GroupID: "g1", Index: 0, Total: 2}, Content: buildContent(t, "Hello")},
	}
	merged, err := Group(members)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged group, got %d", len(merged))
	}
	if got := string(merged[0].Bytes); got != "HelloWorld" {
		t.Errorf("got %q, want %q", got, "HelloWorld")
	}
	if !merged[0].Finalized() {
		t.Error("expected merged Content to be finalized")
	}
}

func TestGroupOffsetsMarkerPositions(t *testing.T) {
	members := []Member{
		{Info: SequenceInfo{GroupID: "g1", Index: 0, Total: 2}, Content: buildContent(t, "abc")},
		{Info: SequenceInfo{GroupID: "g1", Index: 1, Total: 2}, Content: buildContent(t, "de")},
	}
	merged, err := Group(members)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	c := merged[0]
	// Each member's own SegmentMarker sat at BytePos 0; the second member's
	// marker must have been shifted forward by the first member's length.
	if len(c.Segments) != 2 {
		t.Fatalf("expected 2 segment markers, got %d: %+v", len(c.Segments), c.Segments)
	}
	if c.Segments[0].BytePos != 0 || c.Segments[1].BytePos != 3 {
		t.Errorf("unexpected marker positions: %+v", c.Segments)
	}
}

func TestGroupStandaloneMembersPassThrough(t *testing.T) {
	members := []Member{
		{Info: SequenceInfo{}, Content: buildContent(t, "solo")},
	}
	merged, err := Group(members)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(merged) != 1 || string(merged[0].Bytes) != "solo" {
		t.Errorf("expected standalone member to pass through unmerged, got %+v", merged)
	}
}

func TestGroupCountMismatch(t *testing.T) {
	members := []Member{
		{Info: SequenceInfo{GroupID: "g1", Index: 0, Total: 3}, Content: buildContent(t, "a")},
	}
	if _, err := Group(members); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("got %v, want ErrCountMismatch", err)
	}
}

func TestMergeResultsConcatenatesAndOrders(t *testing.T) {
	r1 := zxinggo.NewResult("World", nil, nil, zxinggo.FormatQRCode)
	r1.PutMetadata(zxinggo.MetadataStructuredAppendSequence, 1)
	r1.PutMetadata(zxinggo.MetadataStructuredAppendParity, 42)

	r2 := zxinggo.NewResult("Hello", nil, nil, zxinggo.FormatQRCode)
	r2.PutMetadata(zxinggo.MetadataStructuredAppendSequence, 0)
	r2.PutMetadata(zxinggo.MetadataStructuredAppendParity, 42)

	standalone := zxinggo.NewResult("Other", nil, nil, zxinggo.FormatQRCode)

	infoFor := func(r *zxinggo.Result) SequenceInfo {
		seq, ok := r.Metadata[zxinggo.MetadataStructuredAppendSequence].(int)
		if !ok {
			return SequenceInfo{}
		}
		parity, _ := r.Metadata[zxinggo.MetadataStructuredAppendParity].(int)
		return SequenceInfo{GroupID: "parity", Index: seq, Total: 0}.withParity(parity)
	}

	newResult := func(members []*zxinggo.Result) *zxinggo.Result {
		var text string
		for _, m := range members {
			text += m.Text
		}
		return zxinggo.NewResult(text, nil, nil, zxinggo.FormatQRCode)
	}

	out, err := MergeResults([]*zxinggo.Result{r1, r2, standalone}, infoFor, newResult)
	if err != nil {
		t.Fatalf("MergeResults: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results (1 merged + 1 standalone), got %d", len(out))
	}

	var mergedText string
	var sawStandalone bool
	for _, r := range out {
		if r.Text == "Other" {
			sawStandalone = true
			continue
		}
		mergedText = r.Text
	}
	if mergedText != "HelloWorld" {
		t.Errorf("merged text: got %q, want %q", mergedText, "HelloWorld")
	}
	if !sawStandalone {
		t.Error("expected standalone result to pass through")
	}
}

// withParity is a tiny test-local helper so the parity value can fold into
// GroupID without every call site re-deriving the format string.
func (s SequenceInfo) withParity(parity int) SequenceInfo {
	if s.GroupID == "" {
		return s
	}
	s.GroupID = s.GroupID + "-" + strconv.Itoa(parity)
	return s
}
