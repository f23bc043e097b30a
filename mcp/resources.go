package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lvillar/galaxypdf/seo"
)

const (
	articleURI = "galaxypdf://article"
	schemaURI  = "galaxypdf://schema"
)

var articleResource = mcp.NewResource(articleURI, "Galaxy PDF article",
	mcp.WithResourceDescription("The long-form guide to merging and splitting PDFs, with its FAQ, as markdown."),
	mcp.WithMIMEType("text/markdown"),
)

var schemaResource = mcp.NewResource(schemaURI, "Galaxy PDF structured data",
	mcp.WithResourceDescription("The schema.org JSON-LD graph published with the page."),
	mcp.WithMIMEType("application/ld+json"),
)

func (s *Server) registerResources() {
	s.mcp.AddResource(articleResource, s.handleArticleResource)
	s.mcp.AddResource(schemaResource, s.handleSchemaResource)
}

func (s *Server) handleArticleResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      articleURI,
			MIMEType: "text/markdown",
			Text:     s.catalog.Article.Markdown,
		},
	}, nil
}

func (s *Server) handleSchemaResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	js, err := seo.JSONLD(s.catalog)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      schemaURI,
			MIMEType: "application/ld+json",
			Text:     string(js),
		},
	}, nil
}
