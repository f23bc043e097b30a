// Package galaxypdf implements the state of the Galaxy PDF merge/split tool.
//
// A Workspace holds everything one page load of the tool knows: the active
// mode, the files staged for merging (in merge order), the file and directive
// staged for splitting, and the feedback message shown after an action. The
// merge and split actions check their preconditions, hand the staged files to
// a Processor and deliver the result to a Saver under a fixed file name.
//
// Real PDF processing lives in the pageops package; SimulatedProcessor
// reproduces the placeholder output of the original demo page.
package galaxypdf

import (
	"sync"
	"time"

	"github.com/lvillar/galaxypdf/feedback"
)

// Mode selects which half of the tool is active.
type Mode string

const (
	ModeMerge Mode = "merge"
	ModeSplit Mode = "split"
)

// ParseMode converts a form value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeMerge, ModeSplit:
		return Mode(s), true
	}
	return "", false
}

// Workspace is the tool state of one page load. It is safe for concurrent use.
type Workspace struct {
	mu         sync.Mutex
	mode       Mode
	mergeFiles []StagedFile
	splitFile  *StagedFile
	split      SplitDirective
	lastID     int64
	dragFrom   int
	dragTo     int

	processor Processor
	saver     Saver
	feedback  *feedback.Notifier
	now       func() time.Time
}

// FileInfo describes a staged file without its contents.
type FileInfo struct {
	ID   int64
	Name string
	Size int
}

// Snapshot is a consistent copy of the workspace state for rendering.
type Snapshot struct {
	Mode         Mode
	MergeFiles   []FileInfo
	SplitFile    *FileInfo
	SplitRange   string
	SplitPerPage bool
	Feedback     *feedback.Message
}

// Mode returns the active mode.
func (w *Workspace) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// SetMode switches between merge and split. Staged files of both modes are kept.
func (w *Workspace) SetMode(m Mode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mode = m
}

// Feedback returns the notifier that carries this workspace's messages.
func (w *Workspace) Feedback() *feedback.Notifier {
	return w.feedback
}

// Snapshot copies the current state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	s := Snapshot{
		Mode:         w.mode,
		MergeFiles:   make([]FileInfo, len(w.mergeFiles)),
		SplitRange:   w.split.Range,
		SplitPerPage: w.split.PerPage,
	}
	for i, f := range w.mergeFiles {
		s.MergeFiles[i] = FileInfo{ID: f.ID, Name: f.Name, Size: len(f.Data)}
	}
	if w.splitFile != nil {
		s.SplitFile = &FileInfo{ID: w.splitFile.ID, Name: w.splitFile.Name, Size: len(w.splitFile.Data)}
	}
	w.mu.Unlock()

	if msg, ok := w.feedback.Current(); ok {
		s.Feedback = &msg
	}
	return s
}

// nextIDs reserves n consecutive file IDs seeded from the clock.
// Must be called with w.mu held.
func (w *Workspace) nextIDs(n int) int64 {
	base := w.now().UnixMilli()
	if base <= w.lastID {
		base = w.lastID + 1
	}
	w.lastID = base + int64(n) - 1
	return base
}
