package export

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// defaultThumbnail is the site-relative fallback thumbnail path.
const defaultThumbnail = "public/img/thumbnails/default.png"

// pagePHP is the blog site's article page shell. Placeholders are filled
// by renderPage; the <?php ?> sections are emitted verbatim for the
// target site to evaluate.
const pagePHP = `<?php session_start(); ?>
<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%[1]s</title>
  <link rel="stylesheet" href="../../public/css/article-blue-refined.css">
  <?php include '../../src/Core/Database.php'; ?>
</head>
<body class="home">
  <?php include '../../src/Components/Header.php'; ?>

  <main id="article-content">
    <article>
      <h2>%[1]s</h2>
      <div class="post-meta">
        <span class="date">%[2]s</span>
      </div>
      <div class="post-thumbnail">
        <img src="../../%[3]s" alt="thumbnail">
      </div>
      <div class="post-body retro-border">
        %[4]s
      </div>
      <div style="height: 40px;"></div>
      <?php $article_id = '%[5]s'; ?>
      <?php include '../../src/Components/Footer.php'; ?>
    </article>
  </main>

  <footer>
  </footer>
</body>
</html>
`

// renderPage fills the article page shell.
func renderPage(articleID, title, publishDate, thumbnail, bodyHTML string) string {
	if title == "" {
		title = "Untitled"
	}
	if publishDate == "" {
		publishDate = time.Now().UTC().Format("2006-01-02")
	}
	if thumbnail == "" {
		thumbnail = defaultThumbnail
	}
	return fmt.Sprintf(pagePHP,
		html.EscapeString(title),
		formatDate(publishDate),
		thumbnail,
		indentBody(bodyHTML),
		articleID,
	)
}

// formatDate turns YYYY-MM-DD into the site's YYYY/MM/DD display format.
// Unparseable dates pass through unchanged.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2006/01/02")
}

// indentBody aligns the body HTML with the surrounding shell markup.
func indentBody(body string) string {
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = "        " + lines[i]
	}
	return strings.Join(lines, "\n")
}
