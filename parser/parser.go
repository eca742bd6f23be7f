package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/Bruno02468/f06tools/blocks"
)

// Lines can be long in wide-format reports; give the scanner headroom.
const maxLineLen = 1 << 20

// OnePassParser consumes a report line by line, never backtracking. While no
// decoder is active it hunts for block headers; while one is active it feeds
// it every line and reacts to the decoder's responses. All per-session state
// lives here: the active decoder, the current subcase, the line counter and
// the accumulating result.
type OnePassParser struct {
	file       *F06File
	decoder    blocks.Decoder
	blockStart int
	blockEnd   int
	subcase    int
	lineNo     int
}

// NewOnePassParser readies a parser session. Subcase IDs default to 1 until
// the report announces one.
func NewOnePassParser() *OnePassParser {
	return &OnePassParser{
		file:    &F06File{},
		subcase: 1,
	}
}

// ParseReader runs a full parse over a line stream. The returned error is
// only ever an I/O failure; everything the parser itself finds wrong lands
// in the file's diagnostics.
func ParseReader(r io.Reader) (*F06File, error) {
	p := NewOnePassParser()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		p.ConsumeLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.Finish(), nil
}

// ParseFile runs a full parse over a file on disk.
func ParseFile(path string) (*F06File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fd.Close()
	return ParseReader(fd)
}

// ConsumeLine processes exactly one line of input.
func (p *OnePassParser) ConsumeLine(line string) {
	p.lineNo++
	if p.file.Flavour.Sniff(line) {
		log.Debugf("line %d: flavour now %s", p.lineNo, p.file.Flavour)
	}
	isSubcase := false
	if sc, ok := subcaseAnnouncement(line); ok {
		isSubcase = true
		if sc != p.subcase {
			log.Debugf("line %d: subcase now %d", p.lineNo, sc)
			p.subcase = sc
		}
	}
	if p.decoder != nil {
		p.feedDecoder(line)
		return
	}
	if bt, ok := blocks.DetectHeader(line); ok {
		p.openBlock(bt, line)
		return
	}
	if !isSubcase && looksLikeHeader(line) {
		p.recordPotentialHeader(line)
	}
}

// Finish ends the session and hands over the result. An unterminated block
// at end of input is finalized if it gathered any rows, and a warning is
// recorded either way.
func (p *OnePassParser) Finish() *F06File {
	if p.decoder != nil {
		p.warn(p.blockStart, "unterminated %s block at end of input", p.decoder.BlockType())
		p.emitBlock(false)
	}
	return p.file
}

// feedDecoder routes a line to the active decoder. A new recognized header
// also terminates the block: paginated reports repeat the header on every
// page, and the merger rejoins the pieces afterwards.
func (p *OnePassParser) feedDecoder(line string) {
	if bt, ok := blocks.DetectHeader(line); ok {
		p.emitBlock(true)
		p.openBlock(bt, line)
		return
	}
	switch resp := p.decoder.Consume(line); resp {
	case blocks.Data, blocks.Metadata:
		p.blockEnd = p.lineNo
	case blocks.Useless:
	case blocks.Done:
		p.blockEnd = p.lineNo
		p.emitBlock(true)
	case blocks.Abort:
		p.fatal("%s decoder gave up on line %d", p.decoder.BlockType(), p.lineNo)
		p.decoder = nil
	case blocks.BadFlavour:
		p.fatal("flavour %s cannot decode %s", p.file.Flavour, p.decoder.BlockType())
		p.decoder = nil
	default:
		p.fatal("unknown decoder response %d", resp)
		p.decoder = nil
	}
}

// openBlock instantiates the decoder for a matched header, unless the
// decoder itself turns the header down; a turned-down header is still
// recorded as a potential one.
func (p *OnePassParser) openBlock(bt blocks.BlockType, header string) {
	dec := bt.InitDecoder(p.file.Flavour)
	if !dec.GoodHeader(header) {
		log.Debugf("line %d: %s decoder rejected header", p.lineNo, bt)
		p.recordPotentialHeader(header)
		return
	}
	p.decoder = dec
	p.blockStart = p.lineNo
	p.blockEnd = p.lineNo
}

// emitBlock finalizes the active decoder into the block list. Blocks that
// never gathered a row are dropped; warnIfEmpty controls whether that gets
// a diagnostic (it does not at end of input, which already warned).
func (p *OnePassParser) emitBlock(warnIfEmpty bool) {
	lines := &blocks.LineRange{Start: p.blockStart, End: p.blockEnd}
	fb := p.decoder.Finalize(p.subcase, lines)
	p.decoder = nil
	if fb.NumRows() == 0 {
		if warnIfEmpty {
			p.warn(p.blockStart, "%s block ended with no rows", fb.BlockType)
		}
		return
	}
	p.file.Blocks = append(p.file.Blocks, fb)
}

// recordPotentialHeader appends a header-shaped line to the potential list,
// extending the previous record when the same text repeats on the very next
// line.
func (p *OnePassParser) recordPotentialHeader(line string) {
	text := strings.TrimSpace(line)
	phs := p.file.PotentialHeaders
	if n := len(phs); n > 0 {
		last := &phs[n-1]
		if last.Text == text && last.LastLine()+1 == p.lineNo {
			last.Span++
			return
		}
	}
	p.file.PotentialHeaders = append(p.file.PotentialHeaders, PotentialHeader{
		Start: p.lineNo,
		Span:  1,
		Text:  text,
	})
}

func (p *OnePassParser) warn(line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warningf("line %d: %s", line, msg)
	p.file.Warnings = append(p.file.Warnings, Diagnostic{Line: line, Message: msg})
}

func (p *OnePassParser) fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Errorf("line %d: %s", p.lineNo, msg)
	p.file.FatalErrors = append(p.file.FatalErrors, Diagnostic{Line: p.lineNo, Message: msg})
}

// subcaseAnnouncement recognizes the lines that scope subsequent blocks to
// a subcase, e.g. "OUTPUT FOR SUBCASE 3" or a page header ending in
// "SUBCASE 3". The subcase is ambient parser state, not block state.
func subcaseAnnouncement(line string) (int, bool) {
	idx := strings.Index(line, "SUBCASE")
	if idx < 0 {
		return 0, false
	}
	return blocks.NthInteger(line[idx:], 0)
}

// Potential headers are at least this long once trimmed; shorter all-caps
// runs are page furniture, not table titles.
const minHeaderLen = 8

// looksLikeHeader is the heuristic for "this might be the title of a table
// we don't support": long enough, all caps, has letters, and no leading
// number (data rows start with IDs).
func looksLikeHeader(line string) bool {
	text := strings.TrimSpace(line)
	if len(text) < minHeaderLen {
		return false
	}
	if text[0] >= '0' && text[0] <= '9' {
		return false
	}
	hasLetter := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
