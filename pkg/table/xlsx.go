package table

import (
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "meta-data"

// XLSXWriter writes the table to a single worksheet of an Excel workbook.
// Nothing reaches disk until Close.
type XLSXWriter struct {
	file         *excelize.File
	streamWriter *excelize.StreamWriter
	path         string
	sheet        string
	currentRow   int
}

// NewXLSXWriter prepares a workbook that Close saves to path.
func NewXLSXWriter(path, sheet string) (*XLSXWriter, error) {
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		_ = f.Close()
		return nil, &OutputWriteError{Path: path, Op: "create sheet", Err: err}
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			_ = f.Close()
			return nil, &OutputWriteError{Path: path, Op: "create sheet", Err: err}
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		_ = f.Close()
		return nil, &OutputWriteError{Path: path, Op: "create stream writer", Err: err}
	}

	return &XLSXWriter{
		file:         f,
		streamWriter: sw,
		path:         path,
		sheet:        sheet,
		currentRow:   1,
	}, nil
}

// WriteHeader writes the column names in bold.
func (w *XLSXWriter) WriteHeader(columns []string) error {
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return &OutputWriteError{Path: w.path, Op: "write header", Err: err}
	}
	return w.writeRow(columns, excelize.RowOpts{StyleID: style})
}

// WriteRow appends one row.
func (w *XLSXWriter) WriteRow(values []string) error {
	return w.writeRow(values)
}

func (w *XLSXWriter) writeRow(values []string, opts ...excelize.RowOpts) error {
	cell, err := excelize.CoordinatesToCellName(1, w.currentRow)
	if err != nil {
		return &OutputWriteError{Path: w.path, Op: "write", Err: err}
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := w.streamWriter.SetRow(cell, row, opts...); err != nil {
		return &OutputWriteError{Path: w.path, Op: "write", Err: err}
	}

	w.currentRow++
	return nil
}

// Close flushes the stream and saves the workbook to its path.
func (w *XLSXWriter) Close() error {
	defer w.file.Close()

	if err := w.streamWriter.Flush(); err != nil {
		return &OutputWriteError{Path: w.path, Op: "flush", Err: err}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return &OutputWriteError{Path: w.path, Op: "save", Err: err}
	}
	return nil
}
