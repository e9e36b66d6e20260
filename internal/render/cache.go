package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererPool keeps one sync.Pool of glamour renderers per option set.
// A TermRenderer must not serve two Render calls at once, so callers check
// an instance out and return it when done.
type rendererPool struct {
	mu    sync.Mutex
	pools map[Options]*sync.Pool
}

var globalPool = newRendererPool()

func newRendererPool() *rendererPool {
	return &rendererPool{pools: make(map[Options]*sync.Pool)}
}

func (p *rendererPool) poolFor(opts Options) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool, ok := p.pools[opts]
	if !ok {
		pool = &sync.Pool{}
		p.pools[opts] = pool
	}
	return pool
}

// acquire returns a pooled renderer or builds a fresh one
func (p *rendererPool) acquire(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.poolFor(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return createRenderer(opts)
}

func (p *rendererPool) release(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		p.poolFor(opts).Put(r)
	}
}

func (p *rendererPool) reset() {
	p.mu.Lock()
	p.pools = make(map[Options]*sync.Pool)
	p.mu.Unlock()
}

func (p *rendererPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pools)
}

// createRenderer builds a TermRenderer for opts. The style may be a standard
// glamour style name or a path to a JSON style file.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := opts.Style
	if style == "" {
		style = StyleDark
	}

	options := []glamour.TermRendererOption{
		glamour.WithStylePath(style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		options = append(options, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		options = append(options, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(options...)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	globalPool.reset()
}

// CacheSize returns the number of distinct option sets seen so far.
func CacheSize() int {
	return globalPool.size()
}
