// Package parser implements the single forward pass that turns an F06 text
// report into finalized data blocks plus diagnostics. It owns header
// detection, the currently active block decoder, ambient subcase tracking,
// and cross-page block merging.
package parser

import (
	"sort"

	"github.com/tliron/commonlog"

	"github.com/Bruno02468/f06tools/blocks"
	"github.com/Bruno02468/f06tools/flavour"
)

var log = commonlog.GetLogger("f06tools.parser")

// Diagnostic is a warning or fatal error attached to a source line.
type Diagnostic struct {
	Line    int
	Message string
}

// PotentialHeader records a line (or a run of identical lines) that looked
// like a table header but matched no known block type.
type PotentialHeader struct {
	// Start is the first line of the run.
	Start int
	// Span is how many consecutive lines the run covers.
	Span int
	// Text is the trimmed line text.
	Text string
}

// LastLine returns the last line of the run.
func (ph PotentialHeader) LastLine() int {
	return ph.Start + ph.Span - 1
}

// contiguousWith reports whether other starts right after this run and
// repeats the same text.
func (ph PotentialHeader) contiguousWith(other PotentialHeader) bool {
	return ph.Text == other.Text && ph.Start+ph.Span == other.Start
}

// F06File is the result of one parse: the detected flavour, the finalized
// blocks in the order they were completed, and the accumulated diagnostics.
type F06File struct {
	Flavour          flavour.Flavour
	Blocks           []*blocks.FinalBlock
	Warnings         []Diagnostic
	FatalErrors      []Diagnostic
	PotentialHeaders []PotentialHeader
}

// Subcases returns the distinct subcase IDs across all blocks, ascending.
func (f *F06File) Subcases() []int {
	seen := make(map[int]bool)
	var out []int
	for _, b := range f.Blocks {
		if !seen[b.Subcase] {
			seen[b.Subcase] = true
			out = append(out, b.Subcase)
		}
	}
	sort.Ints(out)
	return out
}

// BlocksForSubcase returns the blocks owned by one subcase, in parse order.
func (f *F06File) BlocksForSubcase(subcase int) []*blocks.FinalBlock {
	var out []*blocks.FinalBlock
	for _, b := range f.Blocks {
		if b.Subcase == subcase {
			out = append(out, b)
		}
	}
	return out
}

// MergeBlocks consolidates blocks of identical (type, subcase) that were
// split across page breaks, and returns how many merges it performed.
// Merging an already-merged file is a no-op. Blocks that share a key but
// have incompatible column layouts are left separate.
func (f *F06File) MergeBlocks() int {
	type key struct {
		bt      blocks.BlockType
		subcase int
	}
	merges := 0
	first := make(map[key]*blocks.FinalBlock)
	kept := f.Blocks[:0]
	for _, b := range f.Blocks {
		k := key{b.BlockType, b.Subcase}
		prev, ok := first[k]
		if !ok {
			first[k] = b
			kept = append(kept, b)
			continue
		}
		if err := prev.Merge(b); err != nil {
			log.Warningf("not merging %s blocks of subcase %d: %s", b.BlockType, b.Subcase, err)
			kept = append(kept, b)
			continue
		}
		merges++
	}
	f.Blocks = kept
	return merges
}

// MergePotentialHeaders collapses adjacent potential headers with identical
// text into single spanning records. Idempotent.
func (f *F06File) MergePotentialHeaders() {
	if len(f.PotentialHeaders) < 2 {
		return
	}
	merged := f.PotentialHeaders[:1]
	for _, ph := range f.PotentialHeaders[1:] {
		last := &merged[len(merged)-1]
		if last.contiguousWith(ph) {
			last.Span += ph.Span
			continue
		}
		merged = append(merged, ph)
	}
	f.PotentialHeaders = merged
}
