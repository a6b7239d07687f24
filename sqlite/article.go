package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/berita"
	"github.com/google/uuid"
)

var _ berita.ArticleService = (*ArticleService)(nil)

// ArticleService implements berita.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

const articleColumns = "id, url, title, content, author, publish_date, method, content_hash, enrichment, scraped_at"

// CreateArticle upserts an article by URL. A new record gets a generated
// ID; a replaced record keeps the ID it was first stored with.
func (s *ArticleService) CreateArticle(ctx context.Context, a *berita.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.ScrapedAt.IsZero() {
		a.ScrapedAt = time.Now().UTC()
	}
	a.ContentHash = hashContent(a.Content)

	var enrichment string
	if a.Enrichment != nil {
		b, err := json.Marshal(a.Enrichment)
		if err != nil {
			return fmt.Errorf("failed to encode enrichment: %w", err)
		}
		enrichment = string(b)
	}

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (id, url, domain, title, content, author, publish_date, method, content_hash, enrichment, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			author = excluded.author,
			publish_date = excluded.publish_date,
			method = excluded.method,
			content_hash = excluded.content_hash,
			enrichment = excluded.enrichment,
			scraped_at = excluded.scraped_at
		RETURNING id
	`, uuid.New().String(), a.URL, berita.NormalizeDomain(a.URL), a.Title, a.Content, a.Author,
		a.PublishDate, string(a.Method), a.ContentHash, enrichment, formatTime(a.ScrapedAt)).Scan(&id)
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}

// FindArticleByURL retrieves the article stored for url.
func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*berita.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE url = ?", url))
	if err == sql.ErrNoRows {
		return nil, berita.Errorf(berita.ENOTFOUND, "article not found")
	}
	return a, err
}

// FindArticles retrieves articles matching the filter, most recently
// scraped first.
func (s *ArticleService) FindArticles(ctx context.Context, filter berita.ArticleFilter) ([]*berita.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, berita.NormalizeDomain(*filter.Domain))
	}
	if filter.Method != nil {
		query.WriteString(" AND method = ?")
		args = append(args, string(*filter.Method))
	}

	query.WriteString(" ORDER BY scraped_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*berita.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes the article stored for url.
func (s *ArticleService) DeleteArticle(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE url = ?", url)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return berita.Errorf(berita.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*berita.Article, error) {
	var a berita.Article
	var method, enrichment, scrapedAt string

	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Content, &a.Author, &a.PublishDate,
		&method, &a.ContentHash, &enrichment, &scrapedAt); err != nil {
		return nil, err
	}
	a.Method = berita.Method(method)

	var err error
	if a.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	if enrichment != "" {
		a.Enrichment = &berita.Enrichment{}
		if err := json.Unmarshal([]byte(enrichment), a.Enrichment); err != nil {
			return nil, fmt.Errorf("failed to decode enrichment: %w", err)
		}
	}

	return &a, nil
}
