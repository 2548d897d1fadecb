package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/ratelimit"
)

// mockAtlasServer mimics the atlas website: one list page and a detail
// page per case, with optional per-path failures.
type mockAtlasServer struct {
	server      *httptest.Server
	listCalls   int32
	detailCalls int32
	failList    bool
	failDetail  map[string]bool
}

func newMockAtlasServer() *mockAtlasServer {
	m := &mockAtlasServer{failDetail: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc(atlas.ListEndpoint, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.listCalls, 1)
		if m.failList {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `
<html><body>
<div class="col-sm-11">
  <table class="table table-striped table-hover">
    <tr><th>No.</th><th>Image</th><th>Age</th><th>HPV</th><th>Diagnosis</th></tr>
    <tr>
      <td>1</td>
      <td><a href="/detail/1"><img src="thumbs/AABB0.jpg"></a></td>
      <td>34</td><td>Positive</td>
      <td><font>LSIL</font></td>
    </tr>
    <tr>
      <td>2</td>
      <td><a href="/detail/2"><img src="thumbs/CCDD0.jpg"></a></td>
      <td>41</td><td>Negative</td>
      <td><font>HSIL</font></td>
    </tr>
    <tr>
      <td>3</td>
      <td>no link</td>
      <td>50</td><td>Unknown</td>
      <td><font>Normal</font></td>
    </tr>
  </table>
</div>
</body></html>`)
	})

	mux.HandleFunc("/detail/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.detailCalls, 1)
		if m.failDetail[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `
<html><body>
<div class="col-sm-11">
  <h2><font>Case</font></h2>
  <ul>
    <li><font>Age:</font> <b>34 years</b></li>
    <li><font>HPV status:</font> <b>Positive</b></li>
  </ul>
  <div class="col-md-13 thumbnail">
    <a class="fancybox" href="/imgs/AABB1.jpg" title="First inspection"><img src="/thumbs/AABB1.jpg"></a>
  </div>
  <font><b>After acetic acid</b></font>
</div>
</body></html>`)
	})

	m.server = httptest.NewServer(mux)
	return m
}

func newTestScraper(m *mockAtlasServer) *Scraper {
	client := atlas.NewClient(5*time.Second, "test-agent", nil)
	return New(client, ratelimit.NewInterval(0), m.server.URL, nil)
}

func TestRunCollectsAllCases(t *testing.T) {
	m := newMockAtlasServer()
	defer m.server.Close()

	s := newTestScraper(m)
	records, err := s.Run(context.Background(), m.server.URL+atlas.ListEndpoint)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(&m.listCalls))
	// Only the two linked cases trigger detail fetches.
	assert.Equal(t, int32(2), atomic.LoadInt32(&m.detailCalls))

	// List order is preserved.
	assert.Equal(t, "1", records[0].CaseNumber)
	assert.Equal(t, "2", records[1].CaseNumber)
	assert.Equal(t, "3", records[2].CaseNumber)

	// Linked cases are enriched.
	assert.Equal(t, "34 years", records[0].Age)
	assert.Equal(t, "Positive", records[0].HPVStatus)
	require.Len(t, records[0].Images, 1)
	assert.Equal(t, "After acetic acid", records[0].Images[0].Stage)

	// The linkless case keeps only its list-page fields.
	assert.Equal(t, "Normal", records[2].HistopathologyDiagnosis)
	assert.Empty(t, records[2].Age)
	assert.Empty(t, records[2].Images)
}

func TestRunListFetchFailureIsFatal(t *testing.T) {
	m := newMockAtlasServer()
	defer m.server.Close()
	m.failList = true

	s := newTestScraper(m)
	records, err := s.Run(context.Background(), m.server.URL+atlas.ListEndpoint)

	require.Error(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(0), atomic.LoadInt32(&m.detailCalls))
}

func TestRunDetailFetchFailureDegradesOneCase(t *testing.T) {
	m := newMockAtlasServer()
	defer m.server.Close()
	m.failDetail["/detail/1"] = true

	s := newTestScraper(m)
	records, err := s.Run(context.Background(), m.server.URL+atlas.ListEndpoint)
	require.NoError(t, err)

	require.Len(t, records, 3)

	// Case 1 degrades to its stub form but stays in the set.
	assert.Equal(t, "1", records[0].CaseNumber)
	assert.Equal(t, "LSIL", records[0].HistopathologyDiagnosis)
	assert.Empty(t, records[0].Age)
	assert.Empty(t, records[0].Images)

	// Case 2 is unaffected.
	assert.Equal(t, "34 years", records[1].Age)
}

func TestRunEmptyListPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="col-sm-11"><p>no results</p></div></body></html>`)
	}))
	defer server.Close()

	client := atlas.NewClient(5*time.Second, "test-agent", nil)
	s := New(client, ratelimit.NewInterval(0), server.URL, nil)

	records, err := s.Run(context.Background(), server.URL+atlas.ListEndpoint)
	require.NoError(t, err)
	assert.Empty(t, records)
}
