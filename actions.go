package galaxypdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/lvillar/galaxypdf/feedback"
)

// User-facing messages shown by the actions.
const (
	msgTooFewFiles      = "Please select at least two PDF files to merge."
	msgNoSplitFile      = "Please select a PDF file to split."
	msgNoSplitDirective = `Please provide a page range or select the "split per page" option.`
	msgMerging          = "Merging PDFs..."
	msgSplitting        = "Splitting PDF..."
)

// Merge combines the staged merge files in list order and saves the result as
// MergedFilename. With fewer than two files staged it shows an error message,
// saves nothing, and returns an error wrapping ErrTooFewFiles.
func (w *Workspace) Merge(ctx context.Context) error {
	staged := w.MergeFiles()
	if len(staged) < 2 {
		w.feedback.Show(msgTooFewFiles, feedback.Error)
		return newActionError("Merge", ErrTooFewFiles)
	}

	files := make([]File, len(staged))
	for i, f := range staged {
		files[i] = f.File
	}

	out, err := w.processor.Merge(ctx, files)
	if err != nil {
		w.feedback.Show(fmt.Sprintf("Could not merge the PDF files: %v", err), feedback.Error)
		return newActionError("Merge", err)
	}

	w.feedback.Show(msgMerging, feedback.Success)
	return w.save("Merge", MergedFilename, out)
}

// Split divides the staged split file by the current directive and saves the
// result as SplitFilename. Without a staged file, or with neither a page range
// nor the per-page option, it shows an error message and saves nothing.
func (w *Workspace) Split(ctx context.Context) error {
	file, ok := w.SplitFile()
	if !ok {
		w.feedback.Show(msgNoSplitFile, feedback.Error)
		return newActionError("Split", ErrNoSplitFile)
	}
	dir := w.SplitDirective()
	dir.Range = strings.TrimSpace(dir.Range)
	if dir.Range == "" && !dir.PerPage {
		w.feedback.Show(msgNoSplitDirective, feedback.Error)
		return newActionError("Split", ErrNoSplitDirective)
	}

	out, err := w.processor.Split(ctx, file.File, dir)
	if err != nil {
		w.feedback.Show(fmt.Sprintf("Could not split the PDF file: %v", err), feedback.Error)
		return newActionError("Split", err)
	}

	w.feedback.Show(msgSplitting, feedback.Success)
	return w.save("Split", SplitFilename, out)
}

func (w *Workspace) save(op, filename string, out Output) error {
	err := w.saver.Save(Download{
		Filename:    filename,
		ContentType: out.ContentType,
		Data:        out.Data,
	})
	if err != nil {
		return newActionError(op, fmt.Errorf("saving %s: %w", filename, err))
	}
	return nil
}
