package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"git.sr.ht/~whereswaldon/graphkit/series"
	"github.com/fsnotify/fsnotify"
)

// Update is one snapshot of a data source. Each update carries the whole
// dataset read so far and replaces the previous one.
type Update struct {
	Name string
	Data series.Dataset
	// Err is set when the source could not be read any further. It is the
	// last update on its channel.
	Err error
}

// Datasource streams datasets out of CSV files, rereading them as they grow.
type Datasource struct {
	watcher *fsnotify.Watcher

	lock sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewDatasource() (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		watcher: watcher,
		subs:    make(map[string]map[chan struct{}]struct{}),
	}
	go d.dispatch()
	return d, nil
}

// Close stops watching files. Streams stay open until their context ends.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}

func (d *Datasource) dispatch() {
	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			d.notify(filepath.Clean(ev.Name))
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

func (d *Datasource) notify(name string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	for ch := range d.subs[name] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// subscribe returns a channel that receives a value whenever name is written.
func (d *Datasource) subscribe(name string) (<-chan struct{}, func()) {
	name = filepath.Clean(name)
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.subs[name]) == 0 {
		if err := d.watcher.Add(name); err != nil {
			log.Printf("not following %q: %v", name, err)
			return nil, func() {}
		}
		d.subs[name] = make(map[chan struct{}]struct{})
	}
	ch := make(chan struct{}, 1)
	d.subs[name][ch] = struct{}{}
	return ch, func() {
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subs[name], ch)
		if len(d.subs[name]) == 0 {
			delete(d.subs, name)
			if err := d.watcher.Remove(name); err != nil {
				log.Printf("failed to stop following %q: %v", name, err)
			}
		}
	}
}

// Watch streams the CSV file at path, sending a new update every time more of
// it has been written.
func (d *Datasource) Watch(ctx context.Context, path string) <-chan Update {
	f, err := os.Open(path)
	if err != nil {
		out := make(chan Update, 1)
		out <- Update{Name: path, Err: fmt.Errorf("failed opening data: %w", err)}
		close(out)
		return out
	}
	return d.Stream(ctx, f)
}

// Stream decodes CSV from source until ctx is done. Sources backed by a file
// are followed as the file grows; anything else is read once.
func (d *Datasource) Stream(ctx context.Context, source io.ReadCloser) <-chan Update {
	var (
		name    string
		changed <-chan struct{}
		stop    = func() {}
	)
	if f, ok := source.(interface{ Name() string }); ok {
		name = f.Name()
		changed, stop = d.subscribe(name)
	}
	out := make(chan Update, 1)
	go func() {
		defer close(out)
		defer stop()
		defer source.Close()
		var dec *Decoder
		if changed != nil {
			dec = NewDecoder(NewLineReader(source))
		} else {
			dec = NewDecoder(source)
		}
		for {
			err := dec.Decode()
			if err == nil && dec.Headings() == nil && changed == nil {
				err = ErrNoHeadings
			}
			select {
			case out <- Update{Name: name, Data: dec.Dataset(), Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil || changed == nil {
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
