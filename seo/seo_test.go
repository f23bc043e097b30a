package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/galaxypdf/content"
)

func TestArticleToggle(t *testing.T) {
	cat := content.MustLoad()
	var a Article

	v := a.View(cat)
	assert.False(t, v.Expanded)
	assert.Equal(t, "Read More", v.Button)
	assert.Equal(t, cat.Article.ExcerptTitle, v.Title)
	assert.Equal(t, cat.Article.Excerpt, v.Body)

	assert.True(t, a.Toggle())
	v = a.View(cat)
	assert.True(t, v.Expanded)
	assert.Equal(t, "Show Less", v.Button)
	assert.Equal(t, cat.Article.Full, v.Body)

	assert.False(t, a.Toggle())
	assert.False(t, a.Expanded())

	a.Expand()
	assert.True(t, a.Expanded())
	a.Collapse()
	assert.False(t, a.Expanded())
}

func TestJSONLD(t *testing.T) {
	cat := content.MustLoad()

	js, err := JSONLD(cat)
	require.NoError(t, err)

	var doc struct {
		Context string           `json:"@context"`
		Graph   []map[string]any `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(js), &doc))
	assert.Equal(t, "https://schema.org", doc.Context)

	types := make([]string, len(doc.Graph))
	for i, node := range doc.Graph {
		types[i], _ = node["@type"].(string)
	}
	assert.Equal(t, []string{"WebSite", "WebApplication", "Article", "FAQPage"}, types)

	faq := doc.Graph[3]["mainEntity"].([]any)
	assert.Len(t, faq, len(cat.FAQ))
	first := faq[0].(map[string]any)
	assert.Equal(t, cat.FAQ[0].Question, first["name"])

	articleNode := doc.Graph[2]
	assert.Equal(t, cat.Article.Headline, articleNode["headline"])
	assert.Equal(t, "https://example.com/#article", articleNode["mainEntityOfPage"].(map[string]any)["@id"])
}

func TestJSONLDCannotCloseScript(t *testing.T) {
	cat := content.MustLoad()
	cat.FAQ = append(cat.FAQ, content.FAQ{Question: "</script><script>alert(1)</script>", Answer: "x"})

	js, err := JSONLD(cat)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(js), "</script>"))
}
