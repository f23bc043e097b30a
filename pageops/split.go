package pageops

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExtractPages writes a new PDF containing the given pages of doc, in the
// given order. Page numbers are 1-based.
func ExtractPages(w io.Writer, doc Document, pages ...int) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	src, err := parse(doc)
	if err != nil {
		return err
	}
	b, err := extract(src, pages)
	if err != nil {
		return err
	}
	return b.write(w)
}

// ExtractPageRange extracts a range of pages (inclusive, 1-based).
func ExtractPageRange(w io.Writer, doc Document, start, end int) error {
	if start < 1 || end < start {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, start, end)
	}
	return ExtractPages(w, doc, Range{First: start, Last: end}.Pages()...)
}

func extract(src *source, pages []int) (*builder, error) {
	b, err := newBuilder()
	if err != nil {
		return nil, err
	}
	if err := b.addPages(src, pages); err != nil {
		return nil, err
	}
	return b, nil
}

// SplitRanges writes a zip archive to w holding one PDF per item of the range
// expression (see ParseRanges). It returns the number of files written.
func SplitRanges(w io.Writer, doc Document, expr string) (int, error) {
	return splitRanges(context.Background(), w, doc, expr)
}

func splitRanges(ctx context.Context, w io.Writer, doc Document, expr string) (int, error) {
	src, err := parse(doc)
	if err != nil {
		return 0, err
	}
	ranges, err := ParseRanges(expr, src.pageCount())
	if err != nil {
		return 0, err
	}
	return writeArchive(ctx, w, src, ranges)
}

// SplitPerPage writes a zip archive to w holding one single-page PDF per page
// of doc, named page_001.pdf, page_002.pdf, and so on.
func SplitPerPage(w io.Writer, doc Document) (int, error) {
	return splitPerPage(context.Background(), w, doc)
}

func splitPerPage(ctx context.Context, w io.Writer, doc Document) (int, error) {
	src, err := parse(doc)
	if err != nil {
		return 0, err
	}
	return writeArchive(ctx, w, src, singlePages(src.pageCount()))
}

func singlePages(pageCount int) []Range {
	ranges := make([]Range, pageCount)
	for i := range ranges {
		ranges[i] = Range{First: i + 1, Last: i + 1}
	}
	return ranges
}

// writeArchive extracts every range of src into its own entry, checking ctx
// before each one.
func writeArchive(ctx context.Context, w io.Writer, src *source, ranges []Range) (int, error) {
	zw := zip.NewWriter(w)
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		b, err := extract(src, r.Pages())
		if err != nil {
			return 0, fmt.Errorf("pageops: splitting pages %s: %w", r, err)
		}
		var buf bytes.Buffer
		if err := b.write(&buf); err != nil {
			return 0, err
		}
		fw, err := zw.Create(r.filename())
		if err != nil {
			return 0, fmt.Errorf("pageops: adding %s: %w", r.filename(), err)
		}
		if _, err := fw.Write(buf.Bytes()); err != nil {
			return 0, fmt.Errorf("pageops: adding %s: %w", r.filename(), err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("pageops: finishing archive: %w", err)
	}
	return len(ranges), nil
}

// SplitToFiles splits a PDF into individual pages, saving each to outputDir.
// Files are named page_001.pdf, page_002.pdf, etc.
func SplitToFiles(inputPath, outputDir string) error {
	if info, err := os.Stat(outputDir); err != nil {
		return fmt.Errorf("pageops: output directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("pageops: %s is not a directory", outputDir)
	}

	doc, err := Open(inputPath)
	if err != nil {
		return err
	}
	src, err := parse(doc)
	if err != nil {
		return err
	}

	for _, r := range singlePages(src.pageCount()) {
		b, err := extract(src, r.Pages())
		if err != nil {
			return fmt.Errorf("pageops: splitting page %d: %w", r.First, err)
		}
		if err := b.writeFile(filepath.Join(outputDir, r.filename())); err != nil {
			return err
		}
	}
	return nil
}

// SplitToArchive splits the PDF at inputPath into a zip archive written to
// outputPath: one PDF per page when perPage is set, otherwise one PDF per item
// of the range expression. The partial archive is removed on failure.
func SplitToArchive(outputPath, inputPath, expr string, perPage bool) (int, error) {
	doc, err := Open(inputPath)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("pageops: creating %s: %w", outputPath, err)
	}

	var n int
	if perPage {
		n, err = SplitPerPage(f, doc)
	} else {
		n, err = SplitRanges(f, doc, expr)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("pageops: closing %s: %w", outputPath, cerr)
	}
	if err != nil {
		os.Remove(outputPath)
		return 0, err
	}
	return n, nil
}
