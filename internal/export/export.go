package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/komumoyu/Motion/internal/checksum"
	"github.com/komumoyu/Motion/internal/models"
	"github.com/komumoyu/Motion/internal/workspace"
)

// ArticleSource is the slice of the workspace service the exporter needs.
type ArticleSource interface {
	ArticleByID(ctx context.Context, id string) (*models.Document, error)
	PublishedArticles(ctx context.Context) ([]models.Document, error)
	MarkExported(ctx context.Context, id, slug, siteURL string) (*models.Document, error)
}

// SiteMeta is one entry of the blog site's article index.
type SiteMeta struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Date      string `json:"date"`
	Thumbnail string `json:"thumbnail"`
}

// Result describes one exported article page.
type Result struct {
	Meta     SiteMeta `json:"metadata"`
	FileName string   `json:"fileName"`
	// Written is false when the on-disk page already matched the render
	// and the write was skipped.
	Written bool `json:"written"`
}

// Exporter renders articles to static PHP pages under a site directory.
type Exporter struct {
	src ArticleSource
	dir string // absolute output directory
}

// New creates an exporter rooted at dir, creating it if needed.
func New(src ArticleSource, dir string) (*Exporter, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("export: resolve dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("export: create dir: %w", err)
	}
	return &Exporter{src: src, dir: abs}, nil
}

// ExportArticle renders one article to <dir>/<slug>.php and marks it as
// published to the site. Unchanged pages are not rewritten.
func (e *Exporter) ExportArticle(ctx context.Context, articleID string) (*Result, error) {
	article, err := e.src.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	slug := articleSlug(article)
	meta := articleMeta(article, slug)
	body := blocksToHTML(parseBlocks(article.Content))
	page := renderPage(article.ID, article.Title, meta.Date, meta.Thumbnail, body)

	written, err := e.writeFile(slug+".php", []byte(page))
	if err != nil {
		return nil, err
	}

	if _, err := e.src.MarkExported(ctx, articleID, slug, meta.URL); err != nil {
		return nil, err
	}
	return &Result{Meta: meta, FileName: slug + ".php", Written: written}, nil
}

// ExportAll renders every published article of the caller plus the site's
// articles.json index (newest publish date first).
func (e *Exporter) ExportAll(ctx context.Context) ([]SiteMeta, error) {
	articles, err := e.src.PublishedArticles(ctx)
	if err != nil {
		return nil, err
	}

	metas := make([]SiteMeta, 0, len(articles))
	for _, a := range articles {
		if _, err := e.ExportArticle(ctx, a.ID); err != nil {
			return nil, err
		}
		metas = append(metas, articleMeta(&a, articleSlug(&a)))
	}
	sort.SliceStable(metas, func(i, j int) bool { return metas[i].Date > metas[j].Date })

	index, err := json.MarshalIndent(metas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode index: %w", err)
	}
	if _, err := e.writeFile("articles.json", index); err != nil {
		return nil, err
	}
	return metas, nil
}

func articleSlug(article *models.Document) string {
	if article.Article != nil && article.Article.Slug != "" {
		return article.Article.Slug
	}
	if slug := workspace.Slugify(article.Title); slug != "" {
		return slug
	}
	return "article"
}

func articleMeta(article *models.Document, slug string) SiteMeta {
	meta := SiteMeta{
		Title:     article.Title,
		URL:       "html/articles/" + slug + ".php",
		Thumbnail: defaultThumbnail,
	}
	if a := article.Article; a != nil {
		if a.SiteURL != "" {
			meta.URL = a.SiteURL
		}
		if a.PublishDate != "" {
			meta.Date = a.PublishDate
		}
		if a.Thumbnail != "" {
			meta.Thumbnail = a.Thumbnail
		}
	}
	return meta
}

// writeFile atomically writes name under the output directory
// (tmp file, fsync, rename) and reports whether anything changed.
// Path traversal out of the directory is rejected.
func (e *Exporter) writeFile(name string, content []byte) (bool, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return false, fmt.Errorf("export: path escapes output dir: %s", name)
	}
	abs := filepath.Join(e.dir, cleaned)

	if existing, err := os.ReadFile(abs); err == nil {
		if checksum.Sum(existing) == checksum.Sum(content) {
			return false, nil
		}
	}

	tmp, err := os.CreateTemp(e.dir, ".motion-export-*")
	if err != nil {
		return false, fmt.Errorf("export: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return false, fmt.Errorf("export: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return false, fmt.Errorf("export: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("export: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return false, fmt.Errorf("export: rename: %w", err)
	}
	success = true
	return true, nil
}
