package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichHeadersNumbering(t *testing.T) {
	in := `<section><h2>Overview</h2></section>` +
		`<section><h3>Detail A</h3><h3>Detail B</h3></section>` +
		`<section><h2>Conclusions</h2></section>`

	out, err := enrichHeaders(in)
	require.NoError(t, err)

	assert.Contains(t, out, `<h2 id="1">`)
	assert.Contains(t, out, `<h3 id="1.1">`)
	assert.Contains(t, out, `<h3 id="1.2">`)
	assert.Contains(t, out, `<h2 id="2">`)
}

func TestEnrichHeadersSelfLinks(t *testing.T) {
	out, err := enrichHeaders(`<h2>Overview</h2>`)
	require.NoError(t, err)

	assert.Contains(t, out, `<a href="#1" class="header"><h2 id="1">Overview</h2></a>`)
}

func TestEnrichHeadersDeepNesting(t *testing.T) {
	in := `<h2>A</h2><h3>B</h3><h4>C</h4><h3>D</h3><h2>E</h2>`

	out, err := enrichHeaders(in)
	require.NoError(t, err)

	assert.Contains(t, out, `id="1"`)
	assert.Contains(t, out, `id="1.1"`)
	assert.Contains(t, out, `id="1.1.1"`)
	assert.Contains(t, out, `id="1.2"`)
	assert.Contains(t, out, `id="2"`)
}

func TestEnrichHeadersTOC(t *testing.T) {
	in := `<section id="toc"></section><h2>Overview</h2><h3>Detail</h3>`

	out, err := enrichHeaders(in)
	require.NoError(t, err)

	assert.Contains(t, out, `<section id="toc"><ol>`)
	assert.Contains(t, out, `<a href="#1">1 Overview</a>`)
	assert.Contains(t, out, `<a href="#1.1">1.1 Detail</a>`)
}

func TestEnrichHeadersNoTOCSlot(t *testing.T) {
	out, err := enrichHeaders(`<h2>Overview</h2>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "<ol>")
}

func TestEnrichHeadersH1Ignored(t *testing.T) {
	out, err := enrichHeaders(`<h1>Title</h1><h2>Overview</h2>`)
	require.NoError(t, err)

	assert.Contains(t, out, `<h1>Title</h1>`)
	assert.Contains(t, out, `<h2 id="1">`)
}

func TestEnrichHeadersEmptyPage(t *testing.T) {
	out, err := enrichHeaders(`<section><p>no headers</p></section>`)
	require.NoError(t, err)
	assert.Contains(t, out, "no headers")
}
