package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const (
	para1 = "Pemerintah Provinsi Jawa Barat mengumumkan program perbaikan jalan sepanjang dua ratus kilometer tahun ini."
	para2 = "Gubernur menyatakan anggaran telah disetujui oleh dewan setelah pembahasan yang berjalan selama tiga bulan."
	para3 = "Pekerjaan dijadwalkan dimulai pada bulan depan dan ditargetkan selesai sebelum musim hujan tiba."
)

// body is the three paragraphs joined the way the extractors join them.
var body = para1 + " " + para2 + " " + para3

func paragraphs() string {
	return "<p>" + para1 + "</p>\n<p>" + para2 + "</p>\n<p>" + para3 + "</p>"
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}
