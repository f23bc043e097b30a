// Package content holds the static text of the site: navigation links, the
// informational pages shown in modal dialogs, the long-form article and its
// FAQ. Everything is embedded in the binary as YAML and markdown and rendered
// to HTML once, when the catalog is loaded.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

//go:embed site.yml
var siteYAML []byte

//go:embed article.md
var articleMarkdown []byte

// Site describes the publisher of the page.
type Site struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Logo        string `yaml:"logo"`
	Author      string `yaml:"author"`
	AuthorURL   string `yaml:"author_url"`
	Domain      string `yaml:"domain"`
	Email       string `yaml:"email"`
}

// NavLink is an entry of the header navigation. ID names the page it opens.
type NavLink struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Page is an informational page shown in a modal dialog.
type Page struct {
	ID     string        `yaml:"id"`
	Title  string        `yaml:"title"`
	Source string        `yaml:"body"`
	Body   template.HTML `yaml:"-"`
}

// FAQ is a question with its answer.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Article is the long-form article shown below the tool.
type Article struct {
	Headline      string        `yaml:"headline"`
	Description   string        `yaml:"description"`
	Published     string        `yaml:"published"`
	Modified      string        `yaml:"modified"`
	ExcerptTitle  string        `yaml:"excerpt_title"`
	ExcerptSource string        `yaml:"excerpt"`
	Excerpt       template.HTML `yaml:"-"`
	Full          template.HTML `yaml:"-"`
	Markdown      string        `yaml:"-"`
}

// Catalog is the complete static content of the site.
type Catalog struct {
	Site    Site
	Nav     []NavLink
	Article Article
	FAQ     []FAQ

	pages []Page
	byID  map[string]int
}

type document struct {
	Site    Site      `yaml:"site"`
	Nav     []NavLink `yaml:"nav"`
	Pages   []Page    `yaml:"pages"`
	Article Article   `yaml:"article"`
	FAQ     []FAQ     `yaml:"faq"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
)

// Load parses the embedded site content.
func Load() (*Catalog, error) {
	return Parse(siteYAML, articleMarkdown)
}

// MustLoad is like Load but panics on error. The embedded content is fixed at
// build time, so an error here is a programming mistake.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from a site YAML document and the article markdown.
func Parse(site, article []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(site, &doc); err != nil {
		return nil, fmt.Errorf("content: parsing site: %w", err)
	}

	c := &Catalog{
		Site:    doc.Site,
		Nav:     doc.Nav,
		Article: doc.Article,
		FAQ:     doc.FAQ,
		byID:    make(map[string]int, len(doc.Pages)),
	}

	for _, p := range doc.Pages {
		if p.ID == "" {
			return nil, fmt.Errorf("content: page %q has no id", p.Title)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("content: duplicate page id %q", p.ID)
		}
		body, err := render(p.Source)
		if err != nil {
			return nil, fmt.Errorf("content: rendering page %q: %w", p.ID, err)
		}
		p.Body = body
		c.byID[p.ID] = len(c.pages)
		c.pages = append(c.pages, p)
	}

	for _, l := range c.Nav {
		if _, ok := c.byID[l.ID]; !ok {
			return nil, fmt.Errorf("content: nav link %q has no page", l.ID)
		}
	}

	excerpt, err := render(c.Article.ExcerptSource)
	if err != nil {
		return nil, fmt.Errorf("content: rendering excerpt: %w", err)
	}
	c.Article.Excerpt = excerpt

	c.Article.Markdown = string(article) + faqMarkdown(c.FAQ)
	full, err := render(c.Article.Markdown)
	if err != nil {
		return nil, fmt.Errorf("content: rendering article: %w", err)
	}
	c.Article.Full = full

	return c, nil
}

// Page returns the page with the given id.
func (c *Catalog) Page(id string) (Page, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

// Pages returns all pages in declaration order.
func (c *Catalog) Pages() []Page {
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// faqMarkdown appends the FAQ as the closing section of the article.
func faqMarkdown(faq []FAQ) string {
	if len(faq) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n## Frequently Asked Questions (FAQ) {#faq}\n")
	for _, q := range faq {
		fmt.Fprintf(&sb, "\n### %s\n\n%s\n", q.Question, q.Answer)
	}
	return sb.String()
}

func render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// The sources are embedded at build time and goldmark escapes raw HTML.
	return template.HTML(buf.String()), nil
}
