package emit

import (
	"fmt"
	"strings"
)

// Emitter builds Go source line by line with tab indentation.
type Emitter struct {
	buf    strings.Builder
	indent int
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Line writes one line at the current indentation.
func (e *Emitter) Line(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		e.buf.WriteByte('\n')
		return
	}
	e.writeIndent()
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (e *Emitter) Blank() {
	e.buf.WriteByte('\n')
}

// Block writes the line followed by " {" and indents.
func (e *Emitter) Block(format string, args ...any) {
	e.writeIndent()
	e.buf.WriteString(fmt.Sprintf(format, args...))
	e.buf.WriteString(" {\n")
	e.indent++
}

// EndBlock dedents and closes the block.
func (e *Emitter) EndBlock() {
	e.Dedent()
	e.writeIndent()
	e.buf.WriteString("}\n")
}

// Indent increases the indentation level.
func (e *Emitter) Indent() {
	e.indent++
}

// Dedent decreases the indentation level.
func (e *Emitter) Dedent() {
	if e.indent > 0 {
		e.indent--
	}
}

// Bytes returns the accumulated source.
func (e *Emitter) Bytes() []byte {
	return []byte(e.buf.String())
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteByte('\t')
	}
}
