package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/MrSnakeDoc/skipsel/internal/cache"
	"github.com/MrSnakeDoc/skipsel/internal/catalog"
	"github.com/MrSnakeDoc/skipsel/internal/fetcher"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/printer"
	"github.com/MrSnakeDoc/skipsel/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `[
	{"id":17933,"size":4,"price_before_vat":278,"vat":20,"hire_period_days":14,"allowed_on_road":true,"allows_heavy_waste":true},
	{"id":17934,"size":6,"price_before_vat":305,"vat":20,"hire_period_days":14,"allowed_on_road":true,"allows_heavy_waste":true},
	{"id":17935,"size":40,"price_before_vat":900,"vat":20,"hire_period_days":14,"allowed_on_road":false,"allows_heavy_waste":false}
]`

var nr32 = models.LocationParams{Postcode: "NR32", Area: "Lowestoft"}

// scriptedPrompter answers prompts from a fixed list and then reports EOF.
type scriptedPrompter struct {
	answers  []string
	confirms []bool
	asked    []string
}

func (s *scriptedPrompter) Prompt(q string) (string, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedPrompter) Confirm(q string) (bool, error) {
	s.asked = append(s.asked, q)
	if len(s.confirms) == 0 {
		return false, io.EOF
	}
	c := s.confirms[0]
	s.confirms = s.confirms[1:]
	return c, nil
}

type recorder struct {
	selected  []*models.Skip
	backs     int
	continued []models.Skip
}

func (r *recorder) callbacks() selection.Callbacks {
	return selection.Callbacks{
		OnSkipSelected: func(s *models.Skip) { r.selected = append(r.selected, s) },
		OnBack:         func() { r.backs++ },
		OnContinue:     func(s models.Skip) { r.continued = append(r.continued, s) },
	}
}

// newServer serves the given statuses in order, then 200 with listing.
func newServer(t *testing.T, statuses ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(hits.Add(1))
		if n <= len(statuses) && statuses[n-1] != http.StatusOK {
			w.WriteHeader(statuses[n-1])
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, listing)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newPage(t *testing.T, srv *httptest.Server, pr *scriptedPrompter, rec *recorder) (*Page, *bytes.Buffer) {
	t.Helper()
	logger.UseTestMode()
	client := catalog.New(
		catalog.WithBaseURL(srv.URL),
		catalog.WithHTTPClient(srv.Client()),
		catalog.WithCache(cache.New(cache.DefaultTTL)),
	)
	var out bytes.Buffer
	pg := New(fetcher.New(client, nr32), selection.New(rec.callbacks()), pr, &out)
	pg.Printer().SetEnabled(false)
	return pg, &out
}

func TestPage_SelectAndContinue(t *testing.T) {
	srv, hits := newServer(t)
	rec := &recorder{}
	pg, out := newPage(t, srv, &scriptedPrompter{answers: []string{"1", "c"}}, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Continued, outcome)
	require.Len(t, rec.continued, 1)
	assert.Equal(t, "17933", rec.continued[0].ID)
	require.Len(t, rec.selected, 1)
	assert.Equal(t, "17933", rec.selected[0].ID)
	assert.Equal(t, int32(1), hits.Load())

	text := out.String()
	assert.Contains(t, text, "Choose Your Perfect Skip Size")
	assert.Contains(t, text, "All prices include VAT and delivery.")
	assert.Contains(t, text, "Need help choosing? Contact our team at support@wewantwaste.co.uk")
	assert.Contains(t, text, "4 Yard Skip")
	assert.Contains(t, text, "6 Yard Skip")
	assert.NotContains(t, text, "40 Yard Skip")
	assert.Contains(t, text, "£334")
	assert.Contains(t, text, "14 day hire period")
	assert.Contains(t, text, "Heavy Waste OK")
	assert.Contains(t, text, "Inc. VAT & Delivery")
}

func TestPage_SelectByIDAndToggleOff(t *testing.T) {
	srv, _ := newServer(t)
	rec := &recorder{}
	pg, _ := newPage(t, srv, &scriptedPrompter{answers: []string{"17934", "2", "c", "q"}}, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Quit, outcome)
	require.Len(t, rec.selected, 2)
	assert.Equal(t, "17934", rec.selected[0].ID)
	assert.Nil(t, rec.selected[1])
	assert.Empty(t, rec.continued, "continue without a selection is a no-op")
}

func TestPage_ClearSelection(t *testing.T) {
	srv, _ := newServer(t)
	rec := &recorder{}
	pg, _ := newPage(t, srv, &scriptedPrompter{answers: []string{"1", "x", "c"}}, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Quit, outcome, "input ends after continue is refused")
	require.Len(t, rec.selected, 2)
	assert.Nil(t, rec.selected[1])
	assert.Empty(t, rec.continued)
}

func TestPage_Back(t *testing.T) {
	srv, _ := newServer(t)
	rec := &recorder{}
	pg, _ := newPage(t, srv, &scriptedPrompter{answers: []string{"b"}}, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Back, outcome)
	assert.Equal(t, 1, rec.backs)
}

func TestPage_RetryAfterError(t *testing.T) {
	srv, hits := newServer(t, http.StatusInternalServerError)
	rec := &recorder{}
	pr := &scriptedPrompter{confirms: []bool{true}, answers: []string{"2", "c"}}
	pg, out := newPage(t, srv, pr, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Continued, outcome)
	assert.Equal(t, int32(2), hits.Load())
	assert.Contains(t, out.String(), "API request failed: 500 Internal Server Error")
	require.Len(t, rec.continued, 1)
	assert.Equal(t, "17934", rec.continued[0].ID)
}

func TestPage_DeclineRetryQuits(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound)
	pg, out := newPage(t, srv, &scriptedPrompter{confirms: []bool{false}}, &recorder{})

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Quit, outcome)
	assert.Contains(t, out.String(), "Error Loading Skips")
}

func TestPage_RefreshKeepsSelection(t *testing.T) {
	srv, hits := newServer(t)
	rec := &recorder{}
	pg, _ := newPage(t, srv, &scriptedPrompter{answers: []string{"1", "r", "c"}}, rec)

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Continued, outcome)
	// refresh inside the TTL is served from the cache
	assert.Equal(t, int32(1), hits.Load())
	require.Len(t, rec.continued, 1)
	assert.Equal(t, "17933", rec.continued[0].ID)

	sel, ok := pg.machine.Selected()
	require.True(t, ok)
	assert.Same(t, &pg.displayed[0], sel)
}

func TestPage_UnknownInputAndEOF(t *testing.T) {
	srv, _ := newServer(t)
	pg, out := newPage(t, srv, &scriptedPrompter{answers: []string{"99", "zz"}}, &recorder{})

	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Quit, outcome)
	assert.Equal(t, 2, strings.Count(out.String(), "Unknown skip or command"))
}

func TestPage_EmptyListingKeepsFooter(t *testing.T) {
	logger.UseTestMode()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "[]")
	}))
	t.Cleanup(srv.Close)

	pg, out := newPage(t, srv, &scriptedPrompter{answers: []string{"q"}}, &recorder{})
	outcome, err := pg.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Quit, outcome)
	assert.Contains(t, out.String(), "No skips available for this location.")
	assert.Contains(t, out.String(), "support@wewantwaste.co.uk")
}

func TestRenderDrawer_BoxIsAligned(t *testing.T) {
	p := printer.NewColorPrinter()
	p.SetEnabled(false)
	var buf bytes.Buffer

	err := renderDrawer(&buf, p, models.Skip{ID: "1", Size: 8, PriceBeforeVAT: 295, VAT: 20, HirePeriodDays: 14, AllowedOnRoad: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	width := len([]rune(lines[0]))
	for _, l := range lines[:len(lines)-1] {
		assert.Equal(t, width, len([]rune(l)), l)
	}
	assert.Contains(t, buf.String(), "Road Placement")
	assert.NotContains(t, buf.String(), "Heavy Waste OK")
	assert.Contains(t, buf.String(), "£354")
}
