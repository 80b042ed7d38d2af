// Package export renders published articles into static PHP pages for the
// external blog site. Document content is the block editor's serialized
// JSON; it is opaque to the rest of the core and only this package parses
// it.
package export

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// block is one node of the serialized editor document.
type block struct {
	Type    string         `json:"type"`
	Props   map[string]any `json:"props"`
	Content []inline       `json:"content"`
}

// inline is a text run inside a block.
type inline struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (b block) text() string {
	var sb strings.Builder
	for _, c := range b.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

func (b block) propString(key string) string {
	if s, ok := b.Props[key].(string); ok {
		return s
	}
	return ""
}

// parseBlocks decodes the editor JSON. Malformed content yields no blocks
// rather than an error: the page is exported empty.
func parseBlocks(content string) []block {
	if content == "" {
		return nil
	}
	var blocks []block
	if err := json.Unmarshal([]byte(content), &blocks); err != nil {
		return nil
	}
	return blocks
}

// blocksToHTML converts editor blocks to the article body HTML. Unknown
// block types degrade to plain paragraphs.
func blocksToHTML(blocks []block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		text := html.EscapeString(b.text())
		switch b.Type {
		case "paragraph":
			parts = append(parts, "<p>"+text+"</p>")
		case "heading":
			level := 1
			if f, ok := b.Props["level"].(float64); ok && f >= 1 && f <= 6 {
				level = int(f)
			}
			parts = append(parts, fmt.Sprintf("<h%d>%s</h%d>", level, text, level))
		case "quote":
			parts = append(parts, "<blockquote>"+text+"</blockquote>")
		case "bulletListItem", "numberedListItem":
			parts = append(parts, "<li>"+text+"</li>")
		case "codeBlock":
			parts = append(parts, "<pre><code>"+text+"</code></pre>")
		case "image":
			url := html.EscapeString(b.propString("url"))
			caption := html.EscapeString(b.propString("caption"))
			img := `<div class="image-block">` + "\n" +
				`  <img src="` + url + `" alt="` + caption + `">`
			if caption != "" {
				img += "\n" + `  <p class="caption">` + caption + `</p>`
			}
			img += "\n</div>"
			parts = append(parts, img)
		default:
			parts = append(parts, "<p>"+text+"</p>")
		}
	}
	return strings.Join(parts, "\n")
}
