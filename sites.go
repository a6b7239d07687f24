package berita

// DefaultSelectorTable returns the built-in selectors for the major
// Indonesian publishers. Each call returns a fresh table.
func DefaultSelectorTable() SelectorTable {
	return NewSelectorTable(map[string]SiteSelectors{
		"detik.com": {
			Title: ParseSelectors(
				".detail__title",
				"h1.title",
				".itp_bodycontent h1",
				".detail-title",
				`[data-module="DetailTitle"] h1`,
			),
			Content: ParseSelectors(
				".detail__body-text",
				".itp_bodycontent",
				".detail-content",
				".detail__body",
				`[data-module="DetailText"]`,
			),
			Author:      ParseSelectors(".detail__author", `meta[name="author"]`),
			PublishDate: ParseSelectors(".detail__date", `meta[name="publishdate"]`),
		},
		"kompas.com": {
			Title: ParseSelectors(
				".read__title",
				"h1.read-page--header-title",
				".artikel__title",
				".read__header__title",
				".article__title h1",
			),
			Content: ParseSelectors(
				".read__content",
				".read-page--content-body",
				".artikel__content",
				".read__content p",
				".article__content",
			),
			Author:      ParseSelectors(".credit-title-name", ".read__credit__item a", `meta[name="content_author"]`),
			PublishDate: ParseSelectors(".read__time", `meta[name="content_PublishedDate"]`),
		},
		"tempo.co": {
			Title: ParseSelectors(
				".title-artikel",
				"h1.margin-bottom-20",
				".detail-title",
				".artikel-single h1",
				".detail-news h1",
			),
			Content: ParseSelectors(
				".detail-content",
				".artikel-content",
				".detail-in",
				".artikel-single .content",
				".detail-news .content",
			),
			Author: ParseSelectors(`meta[name="author"]`),
		},
		"cnn.com": {
			Title: ParseSelectors(
				".headline__text",
				"h1.pg-headline",
				".ArticleHeader-headline",
				".article-header h1",
				".headline",
			),
			Content: ParseSelectors(
				".zn-body__paragraph",
				".ArticleBody-articleBody",
				".l-container",
				".article-body",
				".story-body",
			),
			Author: ParseSelectors(".byline__name", `meta[name="author"]`),
		},
		"cnnindonesia.com": {
			Title: ParseSelectors(
				".detail-title h1",
				".article-title",
				"h1.title",
				".content-title h1",
			),
			Content: ParseSelectors(
				".detail-text",
				".article-content",
				".content-text",
				".detail-content",
			),
			Author: ParseSelectors(`meta[name="author"]`),
		},
		"liputan6.com": {
			Title: ParseSelectors(
				".read-page--header--title h1",
				".article-header-title",
				".read-page-title",
				"h1.title",
			),
			Content: ParseSelectors(
				".read-page--content-body",
				".article-content-body",
				".read-page-content",
				".article-text",
			),
			Author: ParseSelectors(".read-page--header--author__name", `meta[name="author"]`),
		},
		"kumparan.com": {
			Title: ParseSelectors(
				".Headline__Title",
				".Article__Title",
				`h1[data-cy="headline"]`,
				".StoryHeadline__Title",
				".DetailStory__Title",
				"h1.kumHeadline",
				".story-headline h1",
				".article-headline h1",
				".post-title h1",
				`[class*="Headline"] h1`,
				`[class*="Title"] h1`,
			),
			Content: ParseSelectors(
				".Story__Content",
				".Article__Content",
				".StoryContent__Wrapper",
				".DetailStory__Content",
				".story-content",
				".article-content",
				".post-content",
				".kumContent",
				".story-body",
				`[data-cy="story-content"]`,
				`[class*="Story"] [class*="Content"]`,
				`[class*="Article"] [class*="Content"]`,
				".content-wrapper .content",
				".story-wrapper .story",
				".article-wrapper .article",
			),
			Author: ParseSelectors(
				`span[data-qa-id="editor-name"]`,
				`[data-qa-id="editor-name"]`,
				".editor-name",
				`a[href*="author"]`,
			),
		},
		"tribunnews.com": {
			Title: ParseSelectors(
				".side-article .txt-article h1",
				".article h1",
				".content h1",
				".main-content h1",
			),
			Content: ParseSelectors(
				".side-article .txt-article",
				".article .content",
				".main-content .content",
				".article-content",
			),
			Author:      ParseSelectors("#penulis a", `meta[name="author"]`),
			PublishDate: ParseSelectors("time", ".time"),
		},
		"okezone.com": {
			Title: ParseSelectors(
				".title h1",
				".content-title h1",
				".article-title h1",
			),
			Content: ParseSelectors(
				".content .description",
				".article-content",
				".content-text",
			),
		},
		"antaranews.com": {
			Title: ParseSelectors(
				".post-content h1",
				".article-heading h1",
				".content-title h1",
			),
			Content: ParseSelectors(
				".post-content .content",
				".article-content",
				".post-body",
			),
		},
		"suara.com": {
			Title: ParseSelectors(
				".content-head h1",
				".article-title h1",
				".post-title h1",
			),
			Content: ParseSelectors(
				".content-text",
				".article-body",
				".post-content",
			),
		},
	})
}
