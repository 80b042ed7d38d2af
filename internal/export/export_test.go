package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/komumoyu/Motion/internal/models"
)

// fakeSource serves articles from memory and records export marks.
type fakeSource struct {
	articles map[string]*models.Document
	marked   map[string]string // article id -> site url
}

func newFakeSource(docs ...*models.Document) *fakeSource {
	src := &fakeSource{articles: map[string]*models.Document{}, marked: map[string]string{}}
	for _, d := range docs {
		src.articles[d.ID] = d
	}
	return src
}

func (f *fakeSource) ArticleByID(_ context.Context, id string) (*models.Document, error) {
	if d, ok := f.articles[id]; ok {
		return d, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeSource) PublishedArticles(context.Context) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.articles {
		if d.IsPublished {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeSource) MarkExported(_ context.Context, id, slug, siteURL string) (*models.Document, error) {
	f.marked[id] = siteURL
	d := f.articles[id]
	if d.Article == nil {
		d.Article = &models.ArticleData{}
	}
	d.Article.Slug = slug
	d.Article.SiteURL = siteURL
	d.Article.SitePublished = true
	return d, nil
}

func blocksJSON(t *testing.T, blocks []map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(blocks)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestBlocksToHTML(t *testing.T) {
	content := blocksJSON(t, []map[string]any{
		{"type": "heading", "props": map[string]any{"level": 2}, "content": []map[string]any{{"type": "text", "text": "Intro"}}},
		{"type": "paragraph", "content": []map[string]any{{"type": "text", "text": "a < b"}}},
		{"type": "quote", "content": []map[string]any{{"type": "text", "text": "wise"}}},
		{"type": "bulletListItem", "content": []map[string]any{{"type": "text", "text": "one"}}},
		{"type": "codeBlock", "content": []map[string]any{{"type": "text", "text": "x := 1"}}},
		{"type": "mystery", "content": []map[string]any{{"type": "text", "text": "??"}}},
	})

	got := blocksToHTML(parseBlocks(content))

	for _, want := range []string{
		"<h2>Intro</h2>",
		"<p>a &lt; b</p>",
		"<blockquote>wise</blockquote>",
		"<li>one</li>",
		"<pre><code>x := 1</code></pre>",
		"<p>??</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestBlocksToHTMLImage(t *testing.T) {
	content := blocksJSON(t, []map[string]any{
		{"type": "image", "props": map[string]any{"url": "pic.png", "caption": "a pic"}},
	})
	got := blocksToHTML(parseBlocks(content))
	if !strings.Contains(got, `<img src="pic.png" alt="a pic">`) {
		t.Errorf("image markup wrong:\n%s", got)
	}
	if !strings.Contains(got, `<p class="caption">a pic</p>`) {
		t.Errorf("caption missing:\n%s", got)
	}
}

func TestParseBlocksBadJSON(t *testing.T) {
	if blocks := parseBlocks("{not json"); blocks != nil {
		t.Errorf("expected nil blocks, got %v", blocks)
	}
	if blocks := parseBlocks(""); blocks != nil {
		t.Errorf("expected nil for empty content, got %v", blocks)
	}
}

func TestExportArticleWritesPHPPage(t *testing.T) {
	dir := t.TempDir()
	doc := &models.Document{
		ID:      "a1",
		Title:   "My Post",
		UserID:  "u1",
		Kind:    models.KindArticle,
		Content: blocksJSON(t, []map[string]any{{"type": "paragraph", "content": []map[string]any{{"type": "text", "text": "hello"}}}}),
		Article: &models.ArticleData{PublishDate: "2024-05-01", Slug: "my-post"},
	}
	src := newFakeSource(doc)
	e, err := New(src, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := e.ExportArticle(context.Background(), "a1")
	if err != nil {
		t.Fatalf("ExportArticle: %v", err)
	}
	if !res.Written {
		t.Error("expected first export to write")
	}
	if res.FileName != "my-post.php" {
		t.Errorf("file name = %q", res.FileName)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "my-post.php"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	page := string(raw)
	for _, want := range []string{
		"<?php session_start(); ?>",
		"<title>My Post</title>",
		"article-blue-refined.css",
		"2024/05/01",
		"<p>hello</p>",
		"$article_id = 'a1';",
		"Footer.php",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if src.marked["a1"] != "html/articles/my-post.php" {
		t.Errorf("marked url = %q", src.marked["a1"])
	}
}

func TestExportArticleSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	doc := &models.Document{ID: "a1", Title: "Post", Kind: models.KindArticle,
		Article: &models.ArticleData{PublishDate: "2024-01-01", Slug: "post"}}
	e, err := New(newFakeSource(doc), dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := e.ExportArticle(context.Background(), "a1")
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	if !first.Written {
		t.Error("first export should write")
	}

	second, err := e.ExportArticle(context.Background(), "a1")
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if second.Written {
		t.Error("unchanged page should be skipped")
	}
}

func TestExportAllWritesIndexNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := &models.Document{ID: "a1", Title: "Old", Kind: models.KindArticle, IsPublished: true,
		Article: &models.ArticleData{PublishDate: "2023-01-01", Slug: "old"}}
	fresh := &models.Document{ID: "a2", Title: "Fresh", Kind: models.KindArticle, IsPublished: true,
		Article: &models.ArticleData{PublishDate: "2024-06-01", Slug: "fresh"}}
	draft := &models.Document{ID: "a3", Title: "Draft", Kind: models.KindArticle,
		Article: &models.ArticleData{Slug: "draft"}}

	e, err := New(newFakeSource(old, fresh, draft), dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	metas, err := e.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("metas = %d, want 2 (draft excluded)", len(metas))
	}
	if metas[0].Title != "Fresh" || metas[1].Title != "Old" {
		t.Errorf("order = %s, %s; want Fresh, Old", metas[0].Title, metas[1].Title)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "articles.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var decoded []SiteMeta
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if len(decoded) != 2 || decoded[0].URL != "html/articles/fresh.php" {
		t.Errorf("index = %+v", decoded)
	}

	if _, err := os.Stat(filepath.Join(dir, "draft.php")); !os.IsNotExist(err) {
		t.Error("draft page should not be exported")
	}
}

func TestWriteFileRejectsPathEscape(t *testing.T) {
	e, err := New(newFakeSource(), t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.writeFile("../escape.php", []byte("x")); err == nil {
		t.Error("path escape accepted")
	}
}

func TestArticleMetaDefaults(t *testing.T) {
	doc := &models.Document{ID: "a1", Title: "No Extras", Kind: models.KindArticle}
	meta := articleMeta(doc, "no-extras")
	if meta.Thumbnail != defaultThumbnail {
		t.Errorf("thumbnail = %q", meta.Thumbnail)
	}
	if meta.URL != "html/articles/no-extras.php" {
		t.Errorf("url = %q", meta.URL)
	}
}
