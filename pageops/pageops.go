// Package pageops merges and splits existing PDF documents.
//
// Documents are parsed with pdfcpu and their page objects are copied into a
// new document, so pages keep their MediaBox, rotation and resources. Input
// may use classic cross-reference tables or xref and object streams.
package pageops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Sentinel errors for invalid requests.
var (
	ErrNoInput      = errors.New("pageops: no input documents provided")
	ErrNoPages      = errors.New("pageops: no pages specified")
	ErrInvalidRange = errors.New("pageops: invalid page range")
	ErrInvalidPDF   = errors.New("pageops: not a readable PDF")
)

func init() {
	// pdfcpu would otherwise create a configuration directory under the
	// user's home on first use.
	api.DisableConfigDir()
}

// Document is a PDF held in memory.
type Document struct {
	Name string
	Data []byte
}

// Open reads a PDF file into a Document.
func Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("pageops: reading %s: %w", path, err)
	}
	return Document{Name: filepath.Base(path), Data: data}, nil
}

// ReadDocument reads a PDF from r.
func ReadDocument(name string, r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("pageops: reading %s: %w", name, err)
	}
	return Document{Name: name, Data: data}, nil
}

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in doc.
func PageCount(doc Document) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc.Data), configuration())
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages of %s: %w", ErrInvalidPDF, doc.Name, err)
	}
	return n, nil
}

// Validate checks that doc is a well-formed PDF.
func Validate(doc Document) error {
	if err := api.Validate(bytes.NewReader(doc.Data), configuration()); err != nil {
		return fmt.Errorf("%w: validating %s: %w", ErrInvalidPDF, doc.Name, err)
	}
	return nil
}

// source is a parsed input document.
type source struct {
	name string
	ctx  *model.Context
}

// parse reads doc once so that any number of pages can be copied out of it.
func parse(doc Document) (*source, error) {
	conf := configuration()
	conf.Cmd = model.COLLECT
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(doc.Data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidPDF, doc.Name, err)
	}
	return &source{name: doc.Name, ctx: ctx}, nil
}

func (s *source) pageCount() int {
	return s.ctx.PageCount
}

// builder assembles a new PDF out of pages copied from sources.
type builder struct {
	ctx *model.Context
}

func newBuilder() (*builder, error) {
	ctx, err := pdfcpu.CreateContextWithXRefTable(nil, types.PaperSize["A4"])
	if err != nil {
		return nil, fmt.Errorf("pageops: creating output: %w", err)
	}
	return &builder{ctx: ctx}, nil
}

// addPages appends the given pages (1-based) of src in the given order.
func (b *builder) addPages(src *source, pages []int) (err error) {
	for _, p := range pages {
		if p < 1 || p > src.pageCount() {
			return fmt.Errorf("%w: page %d of %d", ErrInvalidRange, p, src.pageCount())
		}
	}

	// pdfcpu panics on some broken object graphs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: copying pages of %s: %v", ErrInvalidPDF, src.name, r)
		}
	}()

	if err := pdfcpu.AddPages(src.ctx, b.ctx, pages, false); err != nil {
		return fmt.Errorf("%w: copying pages of %s: %w", ErrInvalidPDF, src.name, err)
	}
	return nil
}

// write serializes the assembled PDF to w.
func (b *builder) write(w io.Writer) error {
	if err := api.WriteContext(b.ctx, w); err != nil {
		return fmt.Errorf("pageops: writing output: %w", err)
	}
	return nil
}

// writeFile serializes the assembled PDF to a file.
func (b *builder) writeFile(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("pageops: closing %s: %w", filename, cerr)
		}
	}()
	return b.write(f)
}
