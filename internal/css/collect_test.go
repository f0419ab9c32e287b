package css

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-html2pdf/internal/dom"
)

func TestCollect_StyleElements(t *testing.T) {
	t.Parallel()

	root := dom.Parse(`<style>p{color:#ff0000}</style><div><style>.x{width:10px}</style></div><style>p{color:#00ff00}</style>`)
	sheet := CollectStylesheets(root)

	require.Len(t, sheet, 2)
	assert.Equal(t, Color{G: 255, A: 1}, sheet["p"].Color, "later style element wins")
	assert.Equal(t, 10.0, *sheet[".x"].Width)
}

func TestCollect_LinkedStylesheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("h1{font-size:40px}"), 0o644))

	root := dom.Parse(`<link rel="stylesheet" href="css/site.css"><style>h1{color:#0000ff}</style>`)
	sheet := NewCollector(dir, nil).Collect(root, nil)

	h1 := sheet["h1"]
	assert.Equal(t, 0.0, h1.FontSize, "the later style element replaces the linked rule")
	assert.Equal(t, Color{B: 255, A: 1}, h1.Color)
}

func TestCollect_LinkFiltering(t *testing.T) {
	t.Parallel()

	var reads []string
	c := &Collector{
		BaseDir: "/docs",
		ReadFile: func(name string) ([]byte, error) {
			reads = append(reads, name)
			return []byte(".hit{width:1px}"), nil
		},
	}

	root := dom.Parse(`
		<link rel="icon" href="favicon.css">
		<link rel="stylesheet" href="https://cdn.example.com/x.css">
		<link rel="stylesheet" href="//cdn.example.com/y.css">
		<link rel="stylesheet">
		<link rel="stylesheet" href="">
		<link rel="alternate StyleSheet" href="alt.css">
	`)
	sheet := c.Collect(root, nil)

	assert.Equal(t, []string{filepath.Join("/docs", "alt.css")}, reads)
	assert.Contains(t, sheet, ".hit")
}

func TestCollect_BaseSheet(t *testing.T) {
	t.Parallel()

	base := ParseStylesheet("p{color:#111111} h1{font-size:50px}")
	root := dom.Parse(`<style>p{color:#222222}</style>`)
	sheet := NewCollector("", nil).Collect(root, base)

	assert.Equal(t, uint8(0x22), sheet["p"].Color.R, "document rules override the base sheet")
	assert.Equal(t, 50.0, sheet["h1"].FontSize)
	assert.Equal(t, uint8(0x11), base["p"].Color.R, "base sheet is not modified")
}

func TestCollect_UnreadableLinkIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCollector(t.TempDir(), zap.New(core))
	c.ReadFile = func(string) ([]byte, error) { return nil, fs.ErrNotExist }

	sheet := c.Collect(dom.Parse(`<link rel="stylesheet" href="missing.css"><p>x</p>`), nil)

	assert.Empty(t, sheet)
	skipped := logs.FilterMessage("linked stylesheet skipped").All()
	require.Len(t, skipped, 1)
	err, ok := skipped[0].ContextMap()["error"].(string)
	require.True(t, ok)
	assert.Contains(t, err, fs.ErrNotExist.Error())
	assert.Equal(t, 1, logs.FilterMessage("stylesheets collected").Len())
}

func TestCollect_NilLoggerAndReader(t *testing.T) {
	t.Parallel()

	c := &Collector{BaseDir: t.TempDir()}
	assert.NotPanics(t, func() {
		c.Collect(dom.Parse(`<link rel="stylesheet" href="none.css">`), nil)
	})
}

func TestHasToken(t *testing.T) {
	t.Parallel()

	assert.True(t, hasToken("stylesheet", "stylesheet"))
	assert.True(t, hasToken(" preload  STYLESHEET ", "stylesheet"))
	assert.False(t, hasToken("stylesheets", "stylesheet"))
	assert.False(t, hasToken("", "stylesheet"))
}
