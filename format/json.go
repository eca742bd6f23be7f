package format

import (
	"encoding/json"
	"io"

	"github.com/Bruno02468/f06tools/parser"
)

type JSONEncoder struct {
	w    io.Writer
	file *parser.F06File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file *parser.F06File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildFileData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonFile struct {
	Solver           string                `json:"solver"`
	SolType          string                `json:"solType"`
	Blocks           []jsonBlock           `json:"blocks,omitempty"`
	Warnings         []jsonDiagnostic      `json:"warnings,omitempty"`
	FatalErrors      []jsonDiagnostic      `json:"fatalErrors,omitempty"`
	PotentialHeaders []jsonPotentialHeader `json:"potentialHeaders,omitempty"`
}

type jsonBlock struct {
	Type      string      `json:"type"`
	Subcase   int         `json:"subcase"`
	FirstLine int         `json:"firstLine,omitempty"`
	LastLine  int         `json:"lastLine,omitempty"`
	Rows      []string    `json:"rows"`
	Columns   []string    `json:"columns"`
	Data      [][]float64 `json:"data"`
}

type jsonDiagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type jsonPotentialHeader struct {
	Start int    `json:"start"`
	Span  int    `json:"span"`
	Text  string `json:"text"`
}

func (e *JSONEncoder) buildFileData() jsonFile {
	f := e.file
	data := jsonFile{
		Solver:  f.Flavour.Solver.String(),
		SolType: f.Flavour.SolType.String(),
	}
	for _, fb := range f.Blocks {
		jb := jsonBlock{
			Type:    fb.BlockType.ShortName(),
			Subcase: fb.Subcase,
			Data:    fb.Data,
		}
		if fb.LineRange != nil {
			jb.FirstLine = fb.LineRange.Start
			jb.LastLine = fb.LineRange.End
		}
		for _, row := range fb.RowIndexes {
			jb.Rows = append(jb.Rows, row.String())
		}
		for _, col := range fb.ColIndexes {
			jb.Columns = append(jb.Columns, col.String())
		}
		data.Blocks = append(data.Blocks, jb)
	}
	for _, w := range f.Warnings {
		data.Warnings = append(data.Warnings, jsonDiagnostic{Line: w.Line, Message: w.Message})
	}
	for _, fe := range f.FatalErrors {
		data.FatalErrors = append(data.FatalErrors, jsonDiagnostic{Line: fe.Line, Message: fe.Message})
	}
	for _, ph := range f.PotentialHeaders {
		data.PotentialHeaders = append(data.PotentialHeaders, jsonPotentialHeader{
			Start: ph.Start,
			Span:  ph.Span,
			Text:  ph.Text,
		})
	}
	return data
}
