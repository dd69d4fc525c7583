package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func nextUpdate(t *testing.T, updates <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-updates:
		if !ok {
			t.Fatalf("expected an update, stream closed")
		}
		return u
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for an update")
	}
	return Update{}
}

func TestDatasourceFollowsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,10\n2,20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := NewDatasource()
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := ds.Watch(ctx, path)
	u := nextUpdate(t, updates)
	if u.Err != nil {
		t.Fatalf("unexpected error: %v", u.Err)
	}
	if n := u.Data.PointCount(0); n != 2 {
		t.Fatalf("expected 2 points, got %d", n)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("3,30\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	u = nextUpdate(t, updates)
	if n := u.Data.PointCount(0); n != 3 {
		t.Errorf("expected 3 points after appending, got %d", n)
	}
}

func TestDatasourceMissingFile(t *testing.T) {
	ds, err := NewDatasource()
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	u := nextUpdate(t, ds.Watch(context.Background(), filepath.Join(t.TempDir(), "missing.csv")))
	if !errors.Is(u.Err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", u.Err)
	}
}

func TestDatasourceReader(t *testing.T) {
	ds, err := NewDatasource()
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	updates := ds.Stream(context.Background(), io.NopCloser(strings.NewReader("x,y\n1,2\n3,4")))
	u := nextUpdate(t, updates)
	if u.Err != nil {
		t.Fatalf("unexpected error: %v", u.Err)
	}
	if n := u.Data.PointCount(0); n != 2 {
		t.Errorf("expected 2 points, got %d", n)
	}
	if _, ok := <-updates; ok {
		t.Errorf("expected the stream to end after a plain reader is exhausted")
	}
}

func TestUnsubscribeLogsRemoveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := NewDatasource()
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	ch, stop := ds.subscribe(path)
	if ch == nil {
		t.Fatalf("expected to follow %s, log: %s", path, buf.String())
	}
	// Drop the watch behind the datasource's back so its own removal fails.
	if err := ds.watcher.Remove(path); err != nil {
		t.Fatal(err)
	}
	stop()
	if !strings.Contains(buf.String(), "failed to stop following") {
		t.Errorf("expected the removal error to be logged, got %q", buf.String())
	}
}
