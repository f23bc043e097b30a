package galaxypdf

import (
	"context"
	"fmt"
)

// MIMETypePDF is the only file type the workspace stages.
const MIMETypePDF = "application/pdf"

// Fixed names of the files produced by the merge and split actions.
const (
	MergedFilename = "merged_document.pdf"
	SplitFilename  = "split_files.zip"
)

// File is a user selection as reported by the file picker.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// IsPDF reports whether the picker declared the file as a PDF.
func (f File) IsPDF() bool {
	return f.MIMEType == MIMETypePDF
}

// StagedFile is a file held by a workspace pending an action.
type StagedFile struct {
	ID int64
	File
}

// SplitDirective says how a staged file is to be split: by a free-form page
// range expression, or into one output per page.
type SplitDirective struct {
	Range   string
	PerPage bool
}

// Output is the product of a merge or split.
type Output struct {
	ContentType string
	Data        []byte
}

// Download is finished output handed to a Saver under a fixed name.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Processor builds merge and split output.
type Processor interface {
	Merge(ctx context.Context, files []File) (Output, error)
	Split(ctx context.Context, file File, dir SplitDirective) (Output, error)
}

// Saver delivers a download to the user.
type Saver interface {
	Save(d Download) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(d Download) error

func (f SaverFunc) Save(d Download) error { return f(d) }

type discardSaver struct{}

func (discardSaver) Save(Download) error { return nil }

// Placeholder content written by SimulatedProcessor.
const (
	SimulatedMergeContent = "Simulated merged PDF content."
	SimulatedSplitContent = "Simulated ZIP of split PDF pages."
)

// SimulatedProcessor reproduces the demo behaviour: it never reads the input
// and returns fixed placeholder text.
type SimulatedProcessor struct{}

func (SimulatedProcessor) Merge(ctx context.Context, files []File) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return Output{ContentType: "text/plain; charset=utf-8", Data: []byte(SimulatedMergeContent)}, nil
}

func (SimulatedProcessor) Split(ctx context.Context, file File, dir SplitDirective) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return Output{ContentType: "text/plain; charset=utf-8", Data: []byte(SimulatedSplitContent)}, nil
}

func (f StagedFile) String() string {
	return fmt.Sprintf("%d:%s", f.ID, f.Name)
}
