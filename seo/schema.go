// Package seo renders the search-engine facing parts of the page: the
// schema.org structured data block and the expandable article.
package seo

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/lvillar/galaxypdf/content"
)

// Graph is a JSON-LD document with several top-level nodes.
type Graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

type imageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type organization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo imageObject `json:"logo"`
}

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type webSite struct {
	Type        string       `json:"@type"`
	URL         string       `json:"url"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Publisher   organization `json:"publisher"`
}

type offer struct {
	Type  string `json:"@type"`
	Price string `json:"price"`
}

type webApplication struct {
	Type                string `json:"@type"`
	Name                string `json:"name"`
	URL                 string `json:"url"`
	ApplicationCategory string `json:"applicationCategory"`
	OperatingSystem     string `json:"operatingSystem"`
	BrowserRequirements string `json:"browserRequirements"`
	Offers              offer  `json:"offers"`
}

type webPageRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type article struct {
	Type             string       `json:"@type"`
	MainEntityOfPage webPageRef   `json:"mainEntityOfPage"`
	Headline         string       `json:"headline"`
	DatePublished    string       `json:"datePublished"`
	DateModified     string       `json:"dateModified"`
	Author           person       `json:"author"`
	Publisher        organization `json:"publisher"`
	Description      string       `json:"description"`
	ArticleBody      string       `json:"articleBody"`
}

type answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer answer `json:"acceptedAnswer"`
}

type faqPage struct {
	Type       string     `json:"@type"`
	MainEntity []question `json:"mainEntity"`
}

// Schema builds the structured data describing the site, the tool, the
// article and its FAQ.
func Schema(cat *content.Catalog) Graph {
	site := cat.Site
	publisher := organization{
		Type: "Organization",
		Name: site.Name,
		Logo: imageObject{Type: "ImageObject", URL: site.Logo},
	}

	questions := make([]question, len(cat.FAQ))
	for i, q := range cat.FAQ {
		questions[i] = question{
			Type:           "Question",
			Name:           q.Question,
			AcceptedAnswer: answer{Type: "Answer", Text: q.Answer},
		}
	}

	return Graph{
		Context: "https://schema.org",
		Graph: []any{
			webSite{
				Type:        "WebSite",
				URL:         site.URL,
				Name:        site.Name,
				Description: site.Description,
				Publisher:   publisher,
			},
			webApplication{
				Type:                "WebApplication",
				Name:                site.Title,
				URL:                 site.URL,
				ApplicationCategory: "ProductivityApplication",
				OperatingSystem:     "All",
				BrowserRequirements: "Requires a modern web browser with JavaScript enabled.",
				Offers:              offer{Type: "Offer", Price: "0"},
			},
			article{
				Type:             "Article",
				MainEntityOfPage: webPageRef{Type: "WebPage", ID: strings.TrimSuffix(site.URL, "/") + "/#article"},
				Headline:         cat.Article.Headline,
				DatePublished:    cat.Article.Published,
				DateModified:     cat.Article.Modified,
				Author:           person{Type: "Person", Name: site.Author, URL: site.AuthorURL},
				Publisher:        publisher,
				Description:      cat.Article.Description,
				ArticleBody:      cat.Article.Markdown,
			},
			faqPage{Type: "FAQPage", MainEntity: questions},
		},
	}
}

// JSONLD encodes the schema for a <script type="application/ld+json"> element.
func JSONLD(cat *content.Catalog) (template.JS, error) {
	data, err := json.Marshal(Schema(cat))
	if err != nil {
		return "", fmt.Errorf("seo: encoding schema: %w", err)
	}
	// json.Marshal escapes <, > and & so the block cannot close the script element.
	return template.JS(data), nil
}
