package pageops

import (
	"context"
	"fmt"
	"io"
)

// Merge combines documents into a single PDF written to w.
// Pages are added in order: all pages of the first document, then all of the
// second, and so on. Each page keeps the size and rotation of its source page.
func Merge(w io.Writer, docs ...Document) error {
	b, err := merge(context.Background(), docs)
	if err != nil {
		return err
	}
	return b.write(w)
}

// MergeFiles combines multiple PDF files into a single output file.
func MergeFiles(outputPath string, inputPaths ...string) error {
	docs := make([]Document, 0, len(inputPaths))
	for _, p := range inputPaths {
		doc, err := Open(p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	b, err := merge(context.Background(), docs)
	if err != nil {
		return err
	}
	return b.writeFile(outputPath)
}

// merge copies every page of docs into a new builder, checking ctx before
// each document.
func merge(ctx context.Context, docs []Document) (*builder, error) {
	if len(docs) == 0 {
		return nil, ErrNoInput
	}

	b, err := newBuilder()
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := appendDocument(b, doc); err != nil {
			return nil, fmt.Errorf("pageops: merging %s: %w", doc.Name, err)
		}
	}
	return b, nil
}

// appendDocument copies every page of doc into b.
func appendDocument(b *builder, doc Document) error {
	src, err := parse(doc)
	if err != nil {
		return err
	}
	return b.addPages(src, Range{First: 1, Last: src.pageCount()}.Pages())
}
