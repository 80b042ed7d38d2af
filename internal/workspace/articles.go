package workspace

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a title: lowercase, special characters
// stripped, whitespace turned into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ArticleInput are the parameters for creating an article document.
type ArticleInput struct {
	Title       string
	PublishDate string // YYYY-MM-DD
	Thumbnail   string
	Slug        string // derived from the title when empty
}

// CreateArticle inserts a new article document owned by the caller.
func (s *Service) CreateArticle(ctx context.Context, in ArticleInput) (*models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}
	doc := &models.Document{
		Title:  in.Title,
		UserID: p.Subject,
		Kind:   models.KindArticle,
		Article: &models.ArticleData{
			PublishDate: in.PublishDate,
			Thumbnail:   in.Thumbnail,
			Slug:        slug,
		},
	}
	if err := s.store.InsertDocument(doc); err != nil {
		return nil, err
	}
	s.publish(EventDocumentCreated, doc)
	return doc, nil
}

// Articles lists the caller's active article documents, newest first.
func (s *Service) Articles(ctx context.Context) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListArticles(p.Subject, false)
}

// PublishedArticles lists the caller's published, non-archived articles.
func (s *Service) PublishedArticles(ctx context.Context) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListArticles(p.Subject, true)
}

// ArticleByID returns an article document under the same visibility rules
// as GetByID. A document of another kind is reported as not found.
func (s *Service) ArticleByID(ctx context.Context, id string) (*models.Document, error) {
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	if d.Kind != models.KindArticle {
		return nil, apperr.ErrNotFound
	}
	if d.IsPublished && !d.IsArchived {
		return d, nil
	}
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if d.UserID != p.Subject {
		return nil, apperr.ErrUnauthorized
	}
	return d, nil
}

// UpdateArticle merge-patches the document fields and article payload of
// an article.
func (s *Service) UpdateArticle(ctx context.Context, id string, patch models.ArticlePatch) (*models.Document, error) {
	d, _, err := s.ownedDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Kind != models.KindArticle {
		return nil, apperr.ErrNotFound
	}

	if patch.Title != nil || patch.Content != nil {
		err := s.store.UpdateDocument(id, models.DocumentPatch{Title: patch.Title, Content: patch.Content})
		if err != nil {
			return nil, err
		}
	}

	article := d.Article
	if article == nil {
		article = &models.ArticleData{}
	}
	if patch.PublishDate != nil {
		article.PublishDate = *patch.PublishDate
	}
	if patch.Thumbnail != nil {
		article.Thumbnail = *patch.Thumbnail
	}
	if patch.Slug != nil {
		article.Slug = *patch.Slug
	}
	if patch.SiteURL != nil {
		article.SiteURL = *patch.SiteURL
	}
	if patch.SitePublished != nil {
		article.SitePublished = *patch.SitePublished
	}
	if err := s.store.SetArticleData(id, article); err != nil {
		return nil, err
	}

	out, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	s.publish(EventDocumentUpdated, out)
	return out, nil
}

// MarkExported records a successful static-site export of an article:
// the slug and site URL are persisted and the article is flagged as
// published to the site. A missing publish date defaults to today.
func (s *Service) MarkExported(ctx context.Context, id, slug, siteURL string) (*models.Document, error) {
	d, _, err := s.ownedDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Kind != models.KindArticle {
		return nil, apperr.ErrNotFound
	}

	article := d.Article
	if article == nil {
		article = &models.ArticleData{}
	}
	if article.PublishDate == "" {
		article.PublishDate = time.Now().UTC().Format("2006-01-02")
	}
	article.Slug = slug
	article.SiteURL = siteURL
	article.SitePublished = true
	if err := s.store.SetArticleData(id, article); err != nil {
		return nil, err
	}
	return s.store.GetDocument(id)
}
