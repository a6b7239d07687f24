package mock

import (
	"context"

	"github.com/fwojciec/berita"
)

var _ berita.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of berita.ArticleService.
type ArticleService struct {
	CreateArticleFn    func(ctx context.Context, a *berita.Article) error
	FindArticleByURLFn func(ctx context.Context, url string) (*berita.Article, error)
	FindArticlesFn     func(ctx context.Context, filter berita.ArticleFilter) ([]*berita.Article, error)
	DeleteArticleFn    func(ctx context.Context, url string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, a *berita.Article) error {
	return s.CreateArticleFn(ctx, a)
}

func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*berita.Article, error) {
	return s.FindArticleByURLFn(ctx, url)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter berita.ArticleFilter) ([]*berita.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, url string) error {
	return s.DeleteArticleFn(ctx, url)
}

var _ berita.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of berita.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, a *berita.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, a *berita.Article) error {
	return w.WriteArticleFn(ctx, a)
}
