package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Job</title><script>track();</script></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="job-description">
  <h1>Senior Go Engineer</h1>
  <p>Build distributed systems.</p>

  <p>7+ years of experience required.</p>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractTextPrefersPostingSelectors(t *testing.T) {
	text, err := ExtractText(postingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Build distributed systems.")
	assert.NotContains(t, text, "Home | Jobs", "navigation is stripped")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "track()")
}

func TestExtractTextFallsBackToBody(t *testing.T) {
	text, err := ExtractText(`<html><body><p>Plain posting text.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text.", text)
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	text, err := FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
}

func TestFromURLErrors(t *testing.T) {
	_, err := FromURL(context.Background(), "not-a-url")
	var ingestErr *Error
	assert.ErrorAs(t, err, &ingestErr)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err = FromURL(context.Background(), srv.URL)
	require.ErrorAs(t, err, &ingestErr)
	assert.Contains(t, ingestErr.Message, "404")
}
