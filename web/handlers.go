package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	galaxypdf "github.com/lvillar/galaxypdf"
	"github.com/lvillar/galaxypdf/pageops"
	"github.com/lvillar/galaxypdf/session"
)

// multipartMemory is how much of an upload is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// splitOptionsField marks a split request that submits the options form.
const splitOptionsField = "options"

// handlePage opens a new session and renders the full page. Reloading
// therefore always starts from an empty tool.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	s.render(w, http.StatusOK, "page", s.pageView(sess))
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	s.renderTool(w, r, nil)
}

func (s *Server) handleModal(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "modal", s.modalView(sessionFrom(r)))
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "article", s.articleView(sessionFrom(r)))
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := galaxypdf.ParseMode(r.FormValue("mode"))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown mode %q", r.FormValue("mode")), http.StatusBadRequest)
		return
	}
	sessionFrom(r).Workspace.SetMode(mode)
	s.renderTool(w, r, nil)
}

func (s *Server) handleAddMergeFiles(w http.ResponseWriter, r *http.Request) {
	files, ok := s.readUpload(w, r, "files")
	if !ok {
		return
	}
	_, err := sessionFrom(r).Workspace.AddMergeFiles(files)
	s.renderTool(w, r, err)
}

func (s *Server) handleRemoveMergeFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "fid"), 10, 64)
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}
	s.renderTool(w, r, sessionFrom(r).Workspace.RemoveMergeFile(id))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	from, err1 := strconv.Atoi(r.FormValue("from"))
	to, err2 := strconv.Atoi(r.FormValue("to"))
	if err1 != nil || err2 != nil {
		http.Error(w, "from and to must be integers", http.StatusBadRequest)
		return
	}
	s.renderTool(w, r, sessionFrom(r).Workspace.Move(from, to))
}

// handleDrag records one step of a pointer drag over the merge list. The
// list is only reordered when the drag ends.
func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	ws := sessionFrom(r).Workspace
	step := chi.URLParam(r, "step")
	if step == "end" {
		s.renderTool(w, r, ws.DragEnd())
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	switch step {
	case "start":
		ws.DragStart(index)
	case "enter":
		ws.DragEnter(index)
	default:
		http.Error(w, fmt.Sprintf("unknown drag step %q", step), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSplitFile(w http.ResponseWriter, r *http.Request) {
	files, ok := s.readUpload(w, r, "file")
	if !ok {
		return
	}
	if len(files) == 0 {
		s.renderTool(w, r, nil)
		return
	}
	_, err := sessionFrom(r).Workspace.SelectSplitFile(files[0])
	s.renderTool(w, r, err)
}

func (s *Server) handleSplitOptions(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	applySplitOptions(r, sessionFrom(r).Workspace)
	s.renderTool(w, r, nil)
}

// applySplitOptions stores the range and per-page fields of a parsed form.
func applySplitOptions(r *http.Request, ws *galaxypdf.Workspace) {
	// A disabled range input is not submitted, so keep the old range then.
	if _, ok := r.PostForm["range"]; ok {
		ws.SetSplitRange(r.PostForm.Get("range"))
	}
	perPage, _ := strconv.ParseBool(r.PostForm.Get("per_page"))
	if r.PostForm.Get("per_page") == "on" {
		perPage = true
	}
	ws.SetSplitPerPage(perPage)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	err := sess.Workspace.Merge(r.Context())
	if err == nil {
		w.Header().Set("X-Download", downloadPath(sess))
	}
	s.renderTool(w, r, err)
}

// handleSplit runs the split. A request that carries the options form,
// marked by its "options" field, has those values applied first.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	if _, ok := r.PostForm[splitOptionsField]; ok {
		applySplitOptions(r, sess.Workspace)
	}
	err := sess.Workspace.Split(r.Context())
	if err == nil {
		w.Header().Set("X-Download", downloadPath(sess))
	}
	s.renderTool(w, r, err)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	d, ok := sessionFrom(r).Download()
	if !ok {
		http.Error(w, "nothing to download", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(d.Data)
}

func (s *Server) handleOpenModal(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Modal.Open(chi.URLParam(r, "id"))
	s.render(w, http.StatusOK, "modal", s.modalView(sess))
}

func (s *Server) handleOpenMenu(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Modal.OpenMenu()
	s.render(w, http.StatusOK, "modal", s.modalView(sess))
}

func (s *Server) handleCloseModal(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Modal.Close()
	s.render(w, http.StatusOK, "modal", s.modalView(sess))
}

func (s *Server) handleToggleArticle(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Article.Toggle()
	s.render(w, http.StatusOK, "article", s.articleView(sess))
}

// renderTool answers an interaction with the re-rendered tool. Failed
// actions already carry their message in the feedback area, so err only
// selects the status code.
func (s *Server) renderTool(w http.ResponseWriter, r *http.Request, err error) {
	status := actionStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithFields(logrus.Fields{
			"session": sessionFrom(r).ID,
			"path":    r.URL.Path,
		}).Error("action failed")
	}
	s.render(w, status, "tool", s.toolView(sessionFrom(r)))
}

func actionStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, galaxypdf.ErrNotPDF),
		errors.Is(err, galaxypdf.ErrTooFewFiles),
		errors.Is(err, galaxypdf.ErrNoSplitFile),
		errors.Is(err, galaxypdf.ErrNoSplitDirective),
		errors.Is(err, pageops.ErrInvalidRange),
		errors.Is(err, pageops.ErrNoPages),
		errors.Is(err, pageops.ErrInvalidPDF):
		return http.StatusUnprocessableEntity
	case errors.Is(err, galaxypdf.ErrUnknownFile):
		return http.StatusConflict
	case errors.Is(err, galaxypdf.ErrIndexOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// readUpload reads the files of a multipart field in selection order. The
// declared content type of each part is kept as the file's MIME type. On
// failure it writes the error response and reports false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]galaxypdf.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[field]
	files := make([]galaxypdf.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readPart(fh)
		if err != nil {
			s.log.WithError(err).WithField("file", fh.Filename).Error("reading upload")
			http.Error(w, "invalid upload", http.StatusBadRequest)
			return nil, false
		}
		files = append(files, f)
	}
	return files, true
}

// parseForm reads a urlencoded or multipart body into r.PostForm. The page
// script posts FormData, which is always multipart.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func readPart(fh *multipart.FileHeader) (galaxypdf.File, error) {
	f, err := fh.Open()
	if err != nil {
		return galaxypdf.File{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return galaxypdf.File{}, err
	}
	return galaxypdf.File{
		Name:     fh.Filename,
		MIMEType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func downloadPath(sess *session.Session) string {
	return "/s/" + sess.ID + "/download"
}
