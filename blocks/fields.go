package blocks

import (
	"strconv"
	"strings"
)

// FieldKind classifies a whitespace-separated field of a report line.
type FieldKind int

const (
	// FieldWord is anything that is not a number.
	FieldWord FieldKind = iota
	// FieldInteger is a field that parses as a plain integer.
	FieldInteger
	// FieldReal is a field that parses as a real number but not as an
	// integer, i.e. it carries a decimal point or an exponent.
	FieldReal
)

// LineField is one classified field of a line.
type LineField struct {
	Kind FieldKind
	Int  int
	Real float64
	Text string
}

// LineBreakdown splits a line into fields and classifies each one. Integers
// are tried before reals so that bare IDs never count as data values.
func LineBreakdown(line string) []LineField {
	raw := strings.Fields(line)
	fields := make([]LineField, 0, len(raw))
	for _, text := range raw {
		if n, err := strconv.Atoi(text); err == nil {
			fields = append(fields, LineField{Kind: FieldInteger, Int: n, Text: text})
			continue
		}
		if x, err := strconv.ParseFloat(text, 64); err == nil {
			fields = append(fields, LineField{Kind: FieldReal, Real: x, Text: text})
			continue
		}
		fields = append(fields, LineField{Kind: FieldWord, Text: text})
	}
	return fields
}

// ExtractReals returns the real-number fields of a line if there are exactly
// n of them. Data lines carry a fixed count of reals; anything else is not a
// data line for the block being decoded.
func ExtractReals(line string, n int) ([]float64, bool) {
	reals := make([]float64, 0, n)
	for _, f := range LineBreakdown(line) {
		if f.Kind != FieldReal {
			continue
		}
		if len(reals) == n {
			return nil, false
		}
		reals = append(reals, f.Real)
	}
	if len(reals) != n {
		return nil, false
	}
	return reals, true
}

// NthInteger returns the n-th (zero-based) integer field of a line.
func NthInteger(line string, n int) (int, bool) {
	seen := 0
	for _, f := range LineBreakdown(line) {
		if f.Kind != FieldInteger {
			continue
		}
		if seen == n {
			return f.Int, true
		}
		seen++
	}
	return 0, false
}

// NthEtype returns the n-th (zero-based) field of a line that names a known
// element type. Fields like "QUAD4" match directly; decorated forms like
// "CQUAD4" or "QUAD4*" match by containment.
func NthEtype(line string, n int) (ElementType, bool) {
	seen := 0
	for _, f := range LineBreakdown(line) {
		if f.Kind != FieldWord {
			continue
		}
		et, ok := etypeOf(f.Text)
		if !ok {
			continue
		}
		if seen == n {
			return et, true
		}
		seen++
	}
	return NoElementType, false
}

func etypeOf(word string) (ElementType, bool) {
	for _, et := range AllElementTypes {
		if strings.Contains(word, et.String()) {
			return et, true
		}
	}
	return NoElementType, false
}
