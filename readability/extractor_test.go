package readability_test

import (
	"testing"

	"github.com/fwojciec/berita"
	"github.com/fwojciec/berita/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsPage = `<!DOCTYPE html>
<html lang="id">
<head><title>Kereta Cepat Tambah Jadwal Perjalanan</title></head>
<body>
<nav id="nav"><a href="/">Home Nav Link</a></nav>
<div id="sidebar">Sidebar navigation content</div>
<article>
<h1>Kereta Cepat Tambah Jadwal Perjalanan</h1>
<p class="byline">Oleh Agus Salim</p>
<p>Operator kereta cepat menambah enam jadwal perjalanan setiap hari mulai bulan depan untuk melayani lonjakan penumpang pada akhir pekan dan musim liburan sekolah.</p>
<p>Direktur operasional mengatakan tambahan jadwal itu sudah melalui uji keselamatan dan tidak akan mengganggu perawatan rutin sarana yang dilakukan setiap malam.</p>
<p>Penumpang dapat membeli tiket melalui aplikasi resmi maupun loket di stasiun, dan harga tiket untuk jadwal tambahan sama dengan jadwal reguler.</p>
</article>
<footer>Footer copyright text</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article text", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		result, err := ext.Extract(newsPage, "https://rel.example/kereta", berita.ModeFull)

		require.NoError(t, err)
		assert.Equal(t, "Kereta Cepat Tambah Jadwal Perjalanan", result.Title)
		assert.Contains(t, result.Content, "enam jadwal perjalanan")
		assert.NotContains(t, result.Content, "Home Nav Link")
		assert.NotContains(t, result.Content, "Footer copyright text")
		assert.Empty(t, result.PublishDate)
	})

	t.Run("content-only leaves title empty", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		result, err := ext.Extract(newsPage, "https://rel.example/kereta", berita.ModeContentOnly)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Content)
		assert.Empty(t, result.Title)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.Extract("", "https://rel.example/", berita.ModeFull)

		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})
}
