// Package berita extracts structured articles from Indonesian news sites.
// Given a URL it returns the title, body text, author and publication date,
// escalating from a fast structured extractor to a header-rotating HTTP
// ladder and finally to a headless browser until one yields valid content.
//
// This package contains domain types, the pure extraction rules and
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, rod/, sqlite/).
package berita
