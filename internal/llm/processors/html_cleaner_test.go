package processors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJobContent_PrefersJobContainer(t *testing.T) {
	html := `<html><body>
		<nav>Home | Jobs | About</nav>
		<main>
			<div class="job-description">We are hiring a Senior Go Engineer to build our distributed job processing platform in Go and Kubernetes.</div>
		</main>
		<footer>Copyright Acme</footer>
	</body></html>`

	cleaner := NewHTMLCleaner()
	content, err := cleaner.ExtractJobContent(html)
	require.NoError(t, err)

	assert.Contains(t, content, "Senior Go Engineer")
	assert.NotContains(t, content, "Copyright Acme")
}

func TestExtractJobContent_StripsScriptsAndStyles(t *testing.T) {
	html := `<html><body>
		<script>window.tracker = "analytics payload"</script>
		<style>.hidden { display: none }</style>
		<main>Senior Go Engineer wanted, remote-first company, competitive salary and equity.</main>
	</body></html>`

	cleaner := NewHTMLCleaner()
	content, err := cleaner.ExtractJobContent(html)
	require.NoError(t, err)

	assert.Contains(t, content, "Senior Go Engineer")
	assert.NotContains(t, content, "analytics payload")
	assert.NotContains(t, content, "display: none")
}

func TestExtractJobContent_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Short posting text without any job containers at all.</p></body></html>`

	cleaner := NewHTMLCleaner()
	content, err := cleaner.ExtractJobContent(html)
	require.NoError(t, err)

	assert.Contains(t, content, "Short posting text")
}

func TestExtractJobContent_CollapsesWhitespace(t *testing.T) {
	html := "<html><body><main>Go    Engineer\n\n\n\n\nat     Acme, building backend services for the hiring platform.</main></body></html>"

	cleaner := NewHTMLCleaner()
	content, err := cleaner.ExtractJobContent(html)
	require.NoError(t, err)

	assert.NotContains(t, content, "    ")
	assert.False(t, strings.Contains(content, "\n\n\n"))
}
