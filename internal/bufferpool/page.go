package bufferpool

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/tuannm99/novapool/internal/storage"
)

// Page is a pinned view of one frame. Data aliases the frame buffer and must
// not be touched after the pin is released: the frame may already hold a
// different page by then.
type Page struct {
	id      storage.PageID
	frameID int
	data    []byte
}

func (p *Page) ID() storage.PageID { return p.id }
func (p *Page) FrameID() int       { return p.frameID }
func (p *Page) Data() []byte       { return p.data }

// PageGuard owns one pin and gives it back exactly once.
type PageGuard struct {
	m    *Manager
	page *Page

	once  sync.Once
	dirty bool
	err   error
}

// FetchPageGuard is FetchPage with the pin wrapped in a guard.
func (m *Manager) FetchPageGuard(pageID storage.PageID) (*PageGuard, error) {
	p, err := m.FetchPage(pageID)
	if err != nil {
		return nil, err
	}
	return &PageGuard{m: m, page: p}, nil
}

// NewPageGuard is NewPage with the pin wrapped in a guard.
func (m *Manager) NewPageGuard() (*PageGuard, error) {
	p, err := m.NewPage()
	if err != nil {
		return nil, err
	}
	return &PageGuard{m: m, page: p}, nil
}

func (g *PageGuard) Page() *Page        { return g.page }
func (g *PageGuard) ID() storage.PageID { return g.page.id }
func (g *PageGuard) Data() []byte       { return g.page.data }

// MarkDirty records that the holder modified the page.
func (g *PageGuard) MarkDirty() { g.dirty = true }

// Release unpins the page. Later calls return the first call's result.
func (g *PageGuard) Release() error {
	g.once.Do(func() {
		g.err = g.m.UnpinPage(g.page.id, g.dirty)
	})
	return g.err
}

// WithPage pins pageID for the duration of fn. fn reports whether it
// modified the page. The pin is released on every exit path, panics
// included.
func (m *Manager) WithPage(pageID storage.PageID, fn func(p *Page) (dirty bool, err error)) (err error) {
	g, err := m.FetchPageGuard(pageID)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, g.Release())
	}()

	dirty, err := fn(g.Page())
	if dirty {
		g.MarkDirty()
	}
	return err
}
