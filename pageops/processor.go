package pageops

import (
	"bytes"
	"context"

	"github.com/lvillar/galaxypdf"
)

// Processor performs real merge and split operations for a workspace.
type Processor struct{}

// NewProcessor returns a Processor.
func NewProcessor() Processor {
	return Processor{}
}

var _ galaxypdf.Processor = Processor{}

// Merge combines files in order into one PDF. ctx is checked before each
// file is copied.
func (Processor) Merge(ctx context.Context, files []galaxypdf.File) (galaxypdf.Output, error) {
	docs := make([]Document, len(files))
	for i, f := range files {
		docs[i] = Document{Name: f.Name, Data: f.Data}
	}

	b, err := merge(ctx, docs)
	if err != nil {
		return galaxypdf.Output{}, err
	}
	var buf bytes.Buffer
	if err := b.write(&buf); err != nil {
		return galaxypdf.Output{}, err
	}
	return galaxypdf.Output{ContentType: galaxypdf.MIMETypePDF, Data: buf.Bytes()}, nil
}

// Split produces a zip archive: one PDF per page when dir.PerPage is set,
// otherwise one PDF per item of dir.Range. ctx is checked before each
// output file.
func (Processor) Split(ctx context.Context, file galaxypdf.File, dir galaxypdf.SplitDirective) (galaxypdf.Output, error) {
	doc := Document{Name: file.Name, Data: file.Data}

	var buf bytes.Buffer
	var err error
	if dir.PerPage {
		_, err = splitPerPage(ctx, &buf, doc)
	} else {
		_, err = splitRanges(ctx, &buf, doc, dir.Range)
	}
	if err != nil {
		return galaxypdf.Output{}, err
	}
	return galaxypdf.Output{ContentType: "application/zip", Data: buf.Bytes()}, nil
}
