package collect

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sonnert/SyntacticParser/internal/corpus"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "no user agent", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Daily News</title></head><body>
<h1>Council approves budget</h1><h2>Stocks fall on Monday</h2></body></html>`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollect(t *testing.T) {
	srv := newTestServer(t)
	c := &Collector{Client: NewHTTPClient(5 * time.Second), Concurrency: 2}

	pages, err := c.Collect(context.Background(), []string{srv.URL + "/news", srv.URL + "/missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	want := []string{"Daily News", "Council approves budget", "Stocks fall on Monday"}
	if pages[0].Err != nil || !reflect.DeepEqual(pages[0].Headlines, want) {
		t.Errorf("page 0 = %+v, want headlines %q", pages[0], want)
	}
	if pages[1].Err == nil {
		t.Error("expected error for 404 page")
	}
}

func TestCollectCanceled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Collector{Client: NewHTTPClient(5 * time.Second)}
	if _, err := c.Collect(ctx, []string{srv.URL + "/news"}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestWriteHeadlinesReadBack(t *testing.T) {
	pages := []Page{
		{URL: "https://a.example", Headlines: []string{"Council approves budget"}},
		{URL: "https://b.example", Err: fmt.Errorf("HTTP 500")},
		{URL: "https://c.example", Headlines: []string{"Stocks fall", "Dogs bark"}},
	}
	var buf bytes.Buffer
	n, err := WriteHeadlines(&buf, pages)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("wrote %d headlines, want 3", n)
	}
	if strings.Contains(buf.String(), "b.example") {
		t.Error("failed page was written")
	}

	sentences, err := corpus.ReadText(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 3 {
		t.Errorf("read back %d sentences, want 3", len(sentences))
	}
}

func TestLoadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# news sites\nexample.com\n\nhttp://example.org/news\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadURLs(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"https://example.com", "http://example.org/news"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadURLs = %v, want %v", got, want)
	}
}
