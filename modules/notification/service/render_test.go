package service

import (
	"testing"
	"time"

	openingsentity "court-watcher/modules/openings/entity"

	"github.com/stretchr/testify/require"
)

func TestRenderOpeningHTML(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)
	o := openingsentity.NewOpening(2, start, 2)
	o.URLs = []string{"https://cart.example.com/a"}

	html := renderOpeningHTML(o)
	require.Contains(t, html, "Mon Jan 06, 02:00PM - 04:00PM on Court 2")
	require.Contains(t, html, "<a href='https://cart.example.com/a'>book here</a>")
	require.NotContains(t, html, "and <a")
}

func TestRenderOpeningHTML_TwoLinks(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.January, 11, 7, 0, 0, 0, time.UTC)
	o := openingsentity.NewOpening(3, start, 2)
	o.URLs = []string{"https://cart.example.com/a", "https://cart.example.com/b"}

	html := renderOpeningHTML(o)
	require.Contains(t, html, "<a href='https://cart.example.com/a'>book here</a>")
	require.Contains(t, html, "and <a href='https://cart.example.com/b'>here</a>")
}

func TestRenderEmailHTML(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.January, 6, 18, 30, 0, 0, time.UTC)
	first := openingsentity.NewOpening(2, start, 1)
	second := openingsentity.NewOpening(3, start, 1)

	body := renderEmailHTML([]openingsentity.Opening{first, second}, "https://courts.example.com/unsubscribe/tok123")
	require.Contains(t, body, "Court 2")
	require.Contains(t, body, "Court 3")
	require.Contains(t, body, "xoxo")
	require.Contains(t, body, `<a href="https://courts.example.com/unsubscribe/tok123"> unsubscribe </a>`)
}
