package format

import (
	"encoding"

	"github.com/Bruno02468/f06tools/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(file *parser.F06File) error
}
