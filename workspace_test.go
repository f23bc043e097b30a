package galaxypdf_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/galaxypdf"
	"github.com/lvillar/galaxypdf/feedback"
)

// recorder is a Saver that keeps every download it receives.
type recorder struct {
	saved []galaxypdf.Download
}

func (r *recorder) Save(d galaxypdf.Download) error {
	r.saved = append(r.saved, d)
	return nil
}

func pdfFile(name string) galaxypdf.File {
	return galaxypdf.File{Name: name, MIMEType: galaxypdf.MIMETypePDF, Data: []byte("%PDF-1.4 " + name)}
}

func textFile(name string) galaxypdf.File {
	return galaxypdf.File{Name: name, MIMEType: "text/plain", Data: []byte(name)}
}

func newWorkspace(t *testing.T, opts ...galaxypdf.Option) (*galaxypdf.Workspace, *recorder) {
	t.Helper()
	rec := &recorder{}
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	base := []galaxypdf.Option{
		galaxypdf.WithSaver(rec),
		galaxypdf.WithClock(func() time.Time { return fixed }),
		galaxypdf.WithFeedbackDuration(time.Hour),
	}
	ws := galaxypdf.New(append(base, opts...)...)
	t.Cleanup(ws.Feedback().Close)
	return ws, rec
}

func names(files []galaxypdf.StagedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func currentFeedback(t *testing.T, ws *galaxypdf.Workspace) feedback.Message {
	t.Helper()
	msg, ok := ws.Feedback().Current()
	require.True(t, ok, "expected a feedback message")
	return msg
}

func TestNewWorkspaceDefaults(t *testing.T) {
	ws, _ := newWorkspace(t)
	snap := ws.Snapshot()
	assert.Equal(t, galaxypdf.ModeMerge, snap.Mode)
	assert.Empty(t, snap.MergeFiles)
	assert.Nil(t, snap.SplitFile)
	assert.Nil(t, snap.Feedback)
}

func TestSetMode(t *testing.T) {
	ws, _ := newWorkspace(t)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf")})
	require.NoError(t, err)

	ws.SetMode(galaxypdf.ModeSplit)
	assert.Equal(t, galaxypdf.ModeSplit, ws.Mode())
	assert.Len(t, ws.MergeFiles(), 1, "switching mode keeps staged files")

	m, ok := galaxypdf.ParseMode("split")
	assert.True(t, ok)
	assert.Equal(t, galaxypdf.ModeSplit, m)
	_, ok = galaxypdf.ParseMode("rotate")
	assert.False(t, ok)
}

func TestAddMergeFilesKeepsSelectionOrder(t *testing.T) {
	ws, _ := newWorkspace(t)

	staged, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), pdfFile("b.pdf"), pdfFile("c.pdf")})
	require.NoError(t, err)
	require.Len(t, staged, 3)

	files := ws.MergeFiles()
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, names(files))

	seen := make(map[int64]bool)
	for _, f := range files {
		assert.False(t, seen[f.ID], "duplicate id %d", f.ID)
		seen[f.ID] = true
	}

	// IDs stay unique across batches even when the clock does not move.
	more, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("d.pdf")})
	require.NoError(t, err)
	assert.False(t, seen[more[0].ID])
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, names(ws.MergeFiles()))

	// IDs are stable: they do not change when the list is reordered.
	require.NoError(t, ws.Move(0, 3))
	assert.Equal(t, staged[0].ID, ws.MergeFiles()[3].ID)
}

func TestAddMergeFilesRejectsNonPDF(t *testing.T) {
	ws, _ := newWorkspace(t)

	updates, cancel := ws.Feedback().Subscribe()
	defer cancel()
	<-updates

	staged, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), textFile("notes.txt"), textFile("x.doc"), pdfFile("b.pdf")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, galaxypdf.ErrNotPDF))
	assert.Len(t, staged, 2)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(ws.MergeFiles()))

	msg := currentFeedback(t, ws)
	assert.Equal(t, "Only PDF files are accepted.", msg.Text)
	assert.Equal(t, feedback.Error, msg.Severity)

	// Exactly one warning for the whole batch.
	assert.Len(t, updates, 1)
}

func TestRemoveMergeFile(t *testing.T) {
	ws, _ := newWorkspace(t)
	staged, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), pdfFile("b.pdf"), pdfFile("c.pdf")})
	require.NoError(t, err)

	require.NoError(t, ws.RemoveMergeFile(staged[1].ID))
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, names(ws.MergeFiles()))

	err = ws.RemoveMergeFile(staged[1].ID)
	assert.ErrorIs(t, err, galaxypdf.ErrUnknownFile)
}

func TestMoveShiftsItemsBetweenIndices(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 3, []string{"b", "c", "d", "a", "e"}},
		{3, 0, []string{"d", "a", "b", "c", "e"}},
		{1, 2, []string{"a", "c", "b", "d", "e"}},
		{4, 1, []string{"a", "e", "b", "c", "d"}},
		{2, 2, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_to_%d", tt.from, tt.to), func(t *testing.T) {
			ws, _ := newWorkspace(t)
			_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a"), pdfFile("b"), pdfFile("c"), pdfFile("d"), pdfFile("e")})
			require.NoError(t, err)

			require.NoError(t, ws.Move(tt.from, tt.to))
			assert.Equal(t, tt.want, names(ws.MergeFiles()))
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	ws, _ := newWorkspace(t)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a"), pdfFile("b")})
	require.NoError(t, err)

	assert.ErrorIs(t, ws.Move(0, 2), galaxypdf.ErrIndexOutOfRange)
	assert.ErrorIs(t, ws.Move(-1, 0), galaxypdf.ErrIndexOutOfRange)
	assert.Equal(t, []string{"a", "b"}, names(ws.MergeFiles()))
}

func TestDragSequence(t *testing.T) {
	ws, _ := newWorkspace(t)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a"), pdfFile("b"), pdfFile("c")})
	require.NoError(t, err)

	ws.DragStart(2)
	ws.DragEnter(1)
	ws.DragEnter(0)
	require.NoError(t, ws.DragEnd())
	assert.Equal(t, []string{"c", "a", "b"}, names(ws.MergeFiles()))

	// Indices are reset after a drop: a bare DragEnd does nothing.
	require.NoError(t, ws.DragEnd())
	assert.Equal(t, []string{"c", "a", "b"}, names(ws.MergeFiles()))

	// A drag that never entered another item is a no-op.
	ws.DragStart(0)
	require.NoError(t, ws.DragEnd())
	assert.Equal(t, []string{"c", "a", "b"}, names(ws.MergeFiles()))
}

func TestSelectSplitFile(t *testing.T) {
	ws, _ := newWorkspace(t)

	_, err := ws.SelectSplitFile(pdfFile("first.pdf"))
	require.NoError(t, err)
	_, err = ws.SelectSplitFile(pdfFile("second.pdf"))
	require.NoError(t, err)

	f, ok := ws.SplitFile()
	require.True(t, ok)
	assert.Equal(t, "second.pdf", f.Name)

	_, err = ws.SelectSplitFile(textFile("image.png"))
	assert.ErrorIs(t, err, galaxypdf.ErrNotPDF)
	_, ok = ws.SplitFile()
	assert.False(t, ok, "a rejected selection clears the previous one")
	assert.Equal(t, "Only PDF files are accepted.", currentFeedback(t, ws).Text)
}

func TestMergePreconditions(t *testing.T) {
	for _, n := range []int{0, 1} {
		t.Run(fmt.Sprintf("%d files", n), func(t *testing.T) {
			ws, rec := newWorkspace(t)
			for i := 0; i < n; i++ {
				_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf")})
				require.NoError(t, err)
			}

			err := ws.Merge(context.Background())
			assert.ErrorIs(t, err, galaxypdf.ErrTooFewFiles)
			assert.Empty(t, rec.saved)

			msg := currentFeedback(t, ws)
			assert.Equal(t, "Please select at least two PDF files to merge.", msg.Text)
			assert.Equal(t, feedback.Error, msg.Severity)
		})
	}
}

func TestMergeSavesOnce(t *testing.T) {
	ws, rec := newWorkspace(t)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), pdfFile("b.pdf")})
	require.NoError(t, err)

	require.NoError(t, ws.Merge(context.Background()))
	require.Len(t, rec.saved, 1)
	assert.Equal(t, galaxypdf.MergedFilename, rec.saved[0].Filename)
	assert.Equal(t, galaxypdf.SimulatedMergeContent, string(rec.saved[0].Data))

	msg := currentFeedback(t, ws)
	assert.Equal(t, "Merging PDFs...", msg.Text)
	assert.Equal(t, feedback.Success, msg.Severity)
}

func TestSplitPreconditions(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		ws, rec := newWorkspace(t)
		ws.SetSplitPerPage(true)
		assert.ErrorIs(t, ws.Split(context.Background()), galaxypdf.ErrNoSplitFile)
		assert.Empty(t, rec.saved)
		assert.Equal(t, "Please select a PDF file to split.", currentFeedback(t, ws).Text)
	})

	t.Run("no directive", func(t *testing.T) {
		ws, rec := newWorkspace(t)
		_, err := ws.SelectSplitFile(pdfFile("doc.pdf"))
		require.NoError(t, err)
		ws.SetSplitRange("   ")

		assert.ErrorIs(t, ws.Split(context.Background()), galaxypdf.ErrNoSplitDirective)
		assert.Empty(t, rec.saved)
		assert.Equal(t, `Please provide a page range or select the "split per page" option.`, currentFeedback(t, ws).Text)
	})
}

func TestSplitSavesOnce(t *testing.T) {
	tests := []struct {
		name    string
		rng     string
		perPage bool
	}{
		{"range", "1-5, 8, 11-13", false},
		{"per page", "", true},
		{"both", "2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, rec := newWorkspace(t)
			_, err := ws.SelectSplitFile(pdfFile("doc.pdf"))
			require.NoError(t, err)
			ws.SetSplitRange(tt.rng)
			ws.SetSplitPerPage(tt.perPage)

			require.NoError(t, ws.Split(context.Background()))
			require.Len(t, rec.saved, 1)
			assert.Equal(t, galaxypdf.SplitFilename, rec.saved[0].Filename)
			assert.Equal(t, galaxypdf.SimulatedSplitContent, string(rec.saved[0].Data))
			assert.Equal(t, "Splitting PDF...", currentFeedback(t, ws).Text)
		})
	}
}

type failingProcessor struct{ err error }

func (p failingProcessor) Merge(context.Context, []galaxypdf.File) (galaxypdf.Output, error) {
	return galaxypdf.Output{}, p.err
}

func (p failingProcessor) Split(context.Context, galaxypdf.File, galaxypdf.SplitDirective) (galaxypdf.Output, error) {
	return galaxypdf.Output{}, p.err
}

func TestProcessorFailureSkipsSave(t *testing.T) {
	boom := errors.New("corrupt xref table")
	ws, rec := newWorkspace(t, galaxypdf.WithProcessor(failingProcessor{err: boom}))
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), pdfFile("b.pdf")})
	require.NoError(t, err)

	err = ws.Merge(context.Background())
	assert.ErrorIs(t, err, boom)

	var actionErr *galaxypdf.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "Merge", actionErr.Op)
	assert.Empty(t, rec.saved)

	msg := currentFeedback(t, ws)
	assert.Equal(t, feedback.Error, msg.Severity)
	assert.Contains(t, msg.Text, "corrupt xref table")
}

func TestSaverFailureIsReturned(t *testing.T) {
	ws := galaxypdf.New(galaxypdf.WithSaver(galaxypdf.SaverFunc(func(galaxypdf.Download) error {
		return errors.New("disk full")
	})))
	t.Cleanup(ws.Feedback().Close)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf"), pdfFile("b.pdf")})
	require.NoError(t, err)

	err = ws.Merge(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), galaxypdf.MergedFilename)
}

func TestSnapshot(t *testing.T) {
	ws, _ := newWorkspace(t)
	_, err := ws.AddMergeFiles([]galaxypdf.File{pdfFile("a.pdf")})
	require.NoError(t, err)
	_, err = ws.SelectSplitFile(pdfFile("s.pdf"))
	require.NoError(t, err)
	ws.SetSplitRange("1-2")
	ws.SetMode(galaxypdf.ModeSplit)

	snap := ws.Snapshot()
	assert.Equal(t, galaxypdf.ModeSplit, snap.Mode)
	require.Len(t, snap.MergeFiles, 1)
	assert.Equal(t, "a.pdf", snap.MergeFiles[0].Name)
	require.NotNil(t, snap.SplitFile)
	assert.Equal(t, "s.pdf", snap.SplitFile.Name)
	assert.Equal(t, "1-2", snap.SplitRange)
	assert.False(t, snap.SplitPerPage)
}
