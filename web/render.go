package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	galaxypdf "github.com/lvillar/galaxypdf"
	"github.com/lvillar/galaxypdf/content"
	"github.com/lvillar/galaxypdf/modal"
	"github.com/lvillar/galaxypdf/seo"
	"github.com/lvillar/galaxypdf/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func parseTemplates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parsing templates: %w", err)
	}
	return t, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type toolView struct {
	Session string
	galaxypdf.Snapshot
}

type modalView struct {
	Session string
	Show    bool
	IsMenu  bool
	View    modal.View
}

type articleView struct {
	Session string
	seo.ArticleView
}

type pageView struct {
	Session string
	Site    content.Site
	Nav     []content.NavLink
	Schema  template.JS
	Tool    toolView
	Modal   modalView
	Article articleView
}

func (s *Server) toolView(sess *session.Session) toolView {
	return toolView{Session: sess.ID, Snapshot: sess.Workspace.Snapshot()}
}

func (s *Server) modalView(sess *session.Session) modalView {
	v, ok := modal.Resolve(sess.Modal.State(), s.catalog)
	return modalView{Session: sess.ID, Show: ok, IsMenu: v.Kind == modal.Menu, View: v}
}

func (s *Server) articleView(sess *session.Session) articleView {
	return articleView{Session: sess.ID, ArticleView: sess.Article.View(s.catalog)}
}

func (s *Server) pageView(sess *session.Session) pageView {
	return pageView{
		Session: sess.ID,
		Site:    s.catalog.Site,
		Nav:     s.catalog.Nav,
		Schema:  s.schema,
		Tool:    s.toolView(sess),
		Modal:   s.modalView(sess),
		Article: s.articleView(sess),
	}
}

// render executes a named template into a buffer first so a template error
// never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.WithError(err).WithField("template", name).Error("rendering template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
