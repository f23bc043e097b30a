// Package modal tracks the single dialog shown over the page.
//
// A dialog is either an informational page from the content catalog or the
// navigation menu used on small screens. Opening a dialog replaces whatever
// was open before.
package modal

import (
	"html/template"
	"sync"

	"github.com/lvillar/galaxypdf/content"
)

// Kind tells what the active dialog shows.
type Kind int

const (
	None Kind = iota
	Content
	Menu
)

func (k Kind) String() string {
	switch k {
	case Content:
		return "content"
	case Menu:
		return "menu"
	default:
		return "none"
	}
}

// State is the active dialog. ID is set only for Content.
type State struct {
	Kind Kind
	ID   string
}

// Controller holds the dialog state of one page. It is safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	state State
}

// Open shows the page with the given id.
func (c *Controller) Open(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Kind: Content, ID: id}
}

// OpenMenu shows the navigation menu.
func (c *Controller) OpenMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Kind: Menu}
}

// Close hides the dialog.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{}
}

// State returns the active dialog.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View is what a dialog renders.
type View struct {
	Kind  Kind
	ID    string
	Title string
	Body  template.HTML
	Links []content.NavLink
}

// MenuTitle is the title of the navigation menu dialog.
const MenuTitle = "Menu"

// Resolve turns a state into a renderable view. It reports false when nothing
// should be shown: no dialog is open, or the open id has no page.
func Resolve(s State, cat *content.Catalog) (View, bool) {
	switch s.Kind {
	case Content:
		p, ok := cat.Page(s.ID)
		if !ok {
			return View{}, false
		}
		return View{Kind: Content, ID: p.ID, Title: p.Title, Body: p.Body}, true
	case Menu:
		return View{Kind: Menu, Title: MenuTitle, Links: cat.Nav}, true
	}
	return View{}, false
}
