package berita

import "context"

// ArticleService represents a service for storing scraped articles.
type ArticleService interface {
	// CreateArticle stores an article, replacing any earlier record for
	// the same URL.
	CreateArticle(ctx context.Context, a *Article) error

	// FindArticleByURL retrieves the stored article for a URL.
	// Returns ENOTFOUND if no article is stored.
	FindArticleByURL(ctx context.Context, url string) (*Article, error)

	// FindArticles retrieves articles matching the filter, most recently
	// scraped first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle removes the article stored for a URL.
	// Returns ENOTFOUND if no article is stored.
	DeleteArticle(ctx context.Context, url string) error
}

// ArticleWriter exports articles to an external representation.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, a *Article) error
}
