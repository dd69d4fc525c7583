package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is what one window needs to read from the backend.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by every window.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle() (Bundle, error) {
	ds, err := NewDatasource()
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Datasource: ds}, nil
}

// Close releases the services of the bundle.
func (b Bundle) Close() error {
	return b.Datasource.Close()
}
