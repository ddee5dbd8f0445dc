package table

import (
	"bufio"
	"io"
	"strings"
)

// DelimitedWriter writes rows of text fields with a configurable delimiter
// and quote character.
//
// Quoting is minimal: a field is quoted only when it contains the delimiter,
// the quote character, '\r' or '\n', and quote characters inside a quoted
// field are doubled. encoding/csv is not used because it fixes the quote
// character to '"'.
type DelimitedWriter struct {
	Comma   rune // field delimiter, '|' by default
	Quote   rune // quote character, '|' by default
	UseCRLF bool // terminate rows with \r\n, true by default

	w    *bufio.Writer
	c    io.Closer
	path string
}

// NewDelimitedWriter returns a writer to w. If w is an io.Closer it is closed
// by Close.
func NewDelimitedWriter(w io.Writer) *DelimitedWriter {
	dw := &DelimitedWriter{
		Comma:   '|',
		Quote:   '|',
		UseCRLF: true,
		w:       bufio.NewWriterSize(w, 64*1024),
	}
	if c, ok := w.(io.Closer); ok {
		dw.c = c
	}
	return dw
}

// WriteHeader writes the column names.
func (w *DelimitedWriter) WriteHeader(columns []string) error {
	return w.WriteRow(columns)
}

// WriteRow writes one row.
func (w *DelimitedWriter) WriteRow(values []string) error {
	for i, field := range values {
		if i > 0 {
			if _, err := w.w.WriteRune(w.Comma); err != nil {
				return w.fail("write", err)
			}
		}
		if err := w.writeField(field, len(values) == 1); err != nil {
			return w.fail("write", err)
		}
	}

	var err error
	if w.UseCRLF {
		_, err = w.w.WriteString("\r\n")
	} else {
		err = w.w.WriteByte('\n')
	}
	if err != nil {
		return w.fail("write", err)
	}

	return nil
}

func (w *DelimitedWriter) writeField(field string, only bool) error {
	// A lone empty field is quoted so the row is not mistaken for a blank line.
	if !w.needsQuotes(field) && !(only && field == "") {
		_, err := w.w.WriteString(field)
		return err
	}

	if _, err := w.w.WriteRune(w.Quote); err != nil {
		return err
	}
	for _, r := range field {
		if r == w.Quote {
			if _, err := w.w.WriteRune(w.Quote); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteRune(r); err != nil {
			return err
		}
	}
	_, err := w.w.WriteRune(w.Quote)
	return err
}

func (w *DelimitedWriter) needsQuotes(field string) bool {
	return strings.ContainsRune(field, w.Comma) ||
		strings.ContainsRune(field, w.Quote) ||
		strings.ContainsAny(field, "\r\n")
}

// Close flushes buffered output and closes the underlying writer.
func (w *DelimitedWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		if w.c != nil {
			_ = w.c.Close()
		}
		return w.fail("flush", err)
	}
	if w.c != nil {
		if err := w.c.Close(); err != nil {
			return w.fail("close", err)
		}
	}
	return nil
}

func (w *DelimitedWriter) fail(op string, err error) error {
	return &OutputWriteError{Path: w.path, Op: op, Err: err}
}
