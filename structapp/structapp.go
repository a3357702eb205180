// Package structapp merges the fragments a structured-append group of
// barcode symbols carries into one logical result: group by id, sort by
// index, concatenate, re-finalize. It generalizes the teacher's QR-only
// merge step (multi/qrcode/qr_multi_reader.go's processStructuredAppend,
// which sorted []*zxinggo.Result by a sequence-number metadata key and
// concatenated Text/RawBytes/ByteSegments) across every symbology that can
// appear in a structured-append or Macro group: QR/Aztec/Data Matrix key a
// group by a small sequence-index-plus-total pair and a parity checksum;
// PDF417 Macro blocks key a group by a string file ID plus an explicit
// segment index and count (pdf417/decoder/bitstream_parser.go's
// PDF417ResultMetadata). SequenceInfo abstracts both behind one GroupID.
package structapp

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/content"
)

// ErrCountMismatch is returned when a group's declared total disagrees with
// the number of members actually supplied to merge.
var ErrCountMismatch = errors.New("structapp: segment count mismatch")

// SequenceInfo identifies one symbol's place within a structured-append
// group. GroupID is the empty string for a symbol that isn't part of any
// group (not structured-append at all, or a PDF417 symbol with no Macro
// control block). Total of 0 means the group size is unknown, skipping the
// count check.
type SequenceInfo struct {
	GroupID string
	Index   int
	Total   int
}

// Member pairs one symbol's decoded Content with its SequenceInfo.
type Member struct {
	Info    SequenceInfo
	Content *content.Content
}

// Group merges Members sharing a GroupID, in Index order, into one
// finalized Content per group; Members with an empty GroupID pass through
// unmerged, one Content each. Group order in the output follows first
// appearance of each GroupID in members, with standalone members appended
// last, matching the teacher's "symbols present but not part of any
// structured-append group list first" ordering.
func Group(members []Member) ([]*content.Content, error) {
	byGroup := make(map[string][]Member)
	var order []string
	var standalone []*content.Content

	for _, m := range members {
		if m.Info.GroupID == "" {
			standalone = append(standalone, m.Content)
			continue
		}
		if _, ok := byGroup[m.Info.GroupID]; !ok {
			order = append(order, m.Info.GroupID)
		}
		byGroup[m.Info.GroupID] = append(byGroup[m.Info.GroupID], m)
	}

	results := make([]*content.Content, 0, len(order)+len(standalone))
	for _, id := range order {
		group := byGroup[id]
		slices.SortFunc(group, func(a, b Member) int { return a.Info.Index - b.Info.Index })

		if total := group[0].Info.Total; total > 0 && total != len(group) {
			return nil, fmt.Errorf("%w: group %q declares %d segments, got %d", ErrCountMismatch, id, total, len(group))
		}

		merged, err := mergeGroup(group)
		if err != nil {
			return nil, err
		}
		results = append(results, merged)
	}
	results = append(results, standalone...)
	return results, nil
}

// mergeGroup concatenates a group's Contents in order, splicing each
// member's encoding/segment markers forward by the running byte offset
// (spec.md §4.6 "positional-offset-adjusted encoding/segment markers"), the
// same offset-rewrite Content.Prepend already does for a single Content.
func mergeGroup(group []Member) (*content.Content, error) {
	first := group[0].Content
	merged := &content.Content{
		DefaultCharset: first.DefaultCharset,
		HintedCharset:  first.HintedCharset,
		Symbology:      first.Symbology,
		ReaderInit:     first.ReaderInit,
	}

	for _, m := range group {
		base := len(merged.Bytes)
		merged.Bytes = append(merged.Bytes, m.Content.Bytes...)
		for _, e := range m.Content.Encodings {
			merged.Encodings = append(merged.Encodings, content.EncodingMarker{ECI: e.ECI, BytePos: e.BytePos + base})
		}
		for _, s := range m.Content.Segments {
			merged.Segments = append(merged.Segments, content.SegmentMarker{Type: s.Type, BytePos: s.BytePos + base})
		}
		if m.Content.GS1 {
			merged.GS1 = true
		}
		if merged.ApplicationIndicator == "" {
			merged.ApplicationIndicator = m.Content.ApplicationIndicator
		}
	}

	if len(merged.Encodings) == 0 {
		merged.Encodings = append(merged.Encodings, content.EncodingMarker{ECI: merged.DefaultCharset, BytePos: 0})
	}

	if err := merged.Finalize(); err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeResults is the zxinggo.Result-level counterpart to Group, used by a
// format's MultipleBarcodeReader the way QRCodeMultiReader.DecodeMultiple
// called processStructuredAppend: infoFor extracts a SequenceInfo from a
// decoded Result's metadata (each symbology reads its own metadata keys),
// and results sharing a non-empty GroupID are concatenated into one
// combined Result built by newResult. Standalone results (empty GroupID)
// pass through untouched.
func MergeResults(
	results []*zxinggo.Result,
	infoFor func(*zxinggo.Result) SequenceInfo,
	newResult func(members []*zxinggo.Result) *zxinggo.Result,
) ([]*zxinggo.Result, error) {
	type tagged struct {
		info   SequenceInfo
		result *zxinggo.Result
	}

	byGroup := make(map[string][]tagged)
	var order []string
	var out []*zxinggo.Result

	for _, r := range results {
		info := infoFor(r)
		if info.GroupID == "" {
			out = append(out, r)
			continue
		}
		if _, ok := byGroup[info.GroupID]; !ok {
			order = append(order, info.GroupID)
		}
		byGroup[info.GroupID] = append(byGroup[info.GroupID], tagged{info, r})
	}

	for _, id := range order {
		group := byGroup[id]
		slices.SortFunc(group, func(a, b tagged) int { return a.info.Index - b.info.Index })

		if total := group[0].info.Total; total > 0 && total != len(group) {
			return nil, fmt.Errorf("%w: group %q declares %d segments, got %d", ErrCountMismatch, id, total, len(group))
		}

		members := make([]*zxinggo.Result, len(group))
		for i, t := range group {
			members[i] = t.result
		}
		out = append(out, newResult(members))
	}
	return out, nil
}
