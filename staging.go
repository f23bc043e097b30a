package galaxypdf

import (
	"github.com/lvillar/galaxypdf/feedback"
)

const msgOnlyPDF = "Only PDF files are accepted."

// AddMergeFiles appends the PDFs of a picker selection to the merge list, in
// selection order, and returns the staged entries. If any file of the batch is
// not a PDF, a single error message is shown and the returned error wraps
// ErrNotPDF; the accepted files are staged regardless.
func (w *Workspace) AddMergeFiles(batch []File) ([]StagedFile, error) {
	accepted := make([]File, 0, len(batch))
	for _, f := range batch {
		if f.IsPDF() {
			accepted = append(accepted, f)
		}
	}

	w.mu.Lock()
	staged := make([]StagedFile, len(accepted))
	if len(accepted) > 0 {
		base := w.nextIDs(len(accepted))
		for i, f := range accepted {
			staged[i] = StagedFile{ID: base + int64(i), File: f}
		}
		w.mergeFiles = append(w.mergeFiles, staged...)
	}
	w.mu.Unlock()

	if len(accepted) != len(batch) {
		w.feedback.Show(msgOnlyPDF, feedback.Error)
		return staged, newActionError("AddMergeFiles", ErrNotPDF)
	}
	return staged, nil
}

// RemoveMergeFile drops the staged file with the given ID.
func (w *Workspace) RemoveMergeFile(id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, f := range w.mergeFiles {
		if f.ID == id {
			w.mergeFiles = append(w.mergeFiles[:i], w.mergeFiles[i+1:]...)
			return nil
		}
	}
	return newActionError("RemoveMergeFile", ErrUnknownFile)
}

// MergeFiles returns the staged merge list in merge order.
func (w *Workspace) MergeFiles() []StagedFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]StagedFile, len(w.mergeFiles))
	copy(out, w.mergeFiles)
	return out
}

// Move relocates the file at index from to index to. The files in between
// shift by one position; the relative order of all others is unchanged.
func (w *Workspace) Move(from, to int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.move(from, to)
}

func (w *Workspace) move(from, to int) error {
	n := len(w.mergeFiles)
	if from < 0 || from >= n || to < 0 || to >= n {
		return newActionError("Move", ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}
	item := w.mergeFiles[from]
	w.mergeFiles = append(w.mergeFiles[:from], w.mergeFiles[from+1:]...)
	w.mergeFiles = append(w.mergeFiles[:to], append([]StagedFile{item}, w.mergeFiles[to:]...)...)
	return nil
}

// DragStart records the index of the file being dragged.
func (w *Workspace) DragStart(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dragFrom = index
}

// DragEnter records the index the dragged file is currently over.
func (w *Workspace) DragEnter(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dragTo = index
}

// DragEnd drops the dragged file at the last entered index and resets the
// drag. Without both indices recorded it does nothing.
func (w *Workspace) DragEnd() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	from, to := w.dragFrom, w.dragTo
	w.dragFrom, w.dragTo = -1, -1
	if from < 0 || to < 0 {
		return nil
	}
	return w.move(from, to)
}

// SelectSplitFile stages f as the file to split, replacing any previous one.
// A non-PDF clears the selection and shows an error message.
func (w *Workspace) SelectSplitFile(f File) (StagedFile, error) {
	w.mu.Lock()
	if !f.IsPDF() {
		w.splitFile = nil
		w.mu.Unlock()
		w.feedback.Show(msgOnlyPDF, feedback.Error)
		return StagedFile{}, newActionError("SelectSplitFile", ErrNotPDF)
	}
	staged := StagedFile{ID: w.nextIDs(1), File: f}
	w.splitFile = &staged
	w.mu.Unlock()
	return staged, nil
}

// SplitFile returns the staged split file, if any.
func (w *Workspace) SplitFile() (StagedFile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.splitFile == nil {
		return StagedFile{}, false
	}
	return *w.splitFile, true
}

// SetSplitRange sets the page range expression.
func (w *Workspace) SetSplitRange(expr string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.split.Range = expr
}

// SetSplitPerPage sets whether every page becomes its own output file.
func (w *Workspace) SetSplitPerPage(perPage bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.split.PerPage = perPage
}

// SplitDirective returns the current split directive.
func (w *Workspace) SplitDirective() SplitDirective {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.split
}
