package seo

import (
	"html/template"
	"sync"

	"github.com/lvillar/galaxypdf/content"
)

// Article is the expand/collapse state of the article on one page.
type Article struct {
	mu       sync.Mutex
	expanded bool
}

// Expanded reports whether the full article is shown.
func (a *Article) Expanded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expanded
}

// Toggle flips between excerpt and full article and returns the new state.
func (a *Article) Toggle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expanded = !a.expanded
	return a.expanded
}

func (a *Article) Expand() {
	a.mu.Lock()
	a.expanded = true
	a.mu.Unlock()
}

func (a *Article) Collapse() {
	a.mu.Lock()
	a.expanded = false
	a.mu.Unlock()
}

// ArticleView is what the article section renders.
type ArticleView struct {
	Expanded bool
	Title    string
	Body     template.HTML
	Button   string
}

// View returns the excerpt or the full article depending on the state.
func (a *Article) View(cat *content.Catalog) ArticleView {
	if a.Expanded() {
		return ArticleView{Expanded: true, Body: cat.Article.Full, Button: "Show Less"}
	}
	return ArticleView{
		Title:  cat.Article.ExcerptTitle,
		Body:   cat.Article.Excerpt,
		Button: "Read More",
	}
}
