package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/berita"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxRenders is the number of renders leased on one browser before
// a fresh one is launched.
const DefaultMaxRenders = 75

// Instance is one launched browser.
type Instance struct {
	Browser *rod.Browser
	// Close shuts the browser down and kills its process.
	Close func() error
}

// Pool leases a shared browser to renders and replaces it after
// MaxRenders leases, since long batch runs grow Chrome's memory without
// bound. A replaced browser keeps serving the renders already holding it
// and is closed when the last of them releases it.
//
// Pool is safe for concurrent use.
type Pool struct {
	// Launch starts a browser.
	Launch func() (*Instance, error)

	// MaxRenders is the number of leases per browser. Zero means
	// DefaultMaxRenders.
	MaxRenders int

	mu      sync.Mutex
	current *generation
	live    map[*generation]struct{}
	closed  bool
}

// generation tracks the leases of one browser.
type generation struct {
	inst     *Instance
	leased   int
	inflight int
	retired  bool
}

// NewPool returns a Pool that launches headless Chrome.
func NewPool(maxRenders int) *Pool {
	return &Pool{Launch: LaunchChrome, MaxRenders: maxRenders}
}

// Start launches the first browser so a missing Chrome is reported before
// any render.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return berita.Errorf(berita.EINVALID, "browser pool is closed")
	}
	if p.current != nil {
		return nil
	}
	inst, err := p.Launch()
	if err != nil {
		return err
	}
	p.current = &generation{inst: inst}
	p.live = map[*generation]struct{}{p.current: {}}
	return nil
}

// Acquire leases a browser to one render. The returned release function
// must be called exactly once when the render is done with the browser.
func (p *Pool) Acquire() (*rod.Browser, func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nil, berita.Errorf(berita.EINVALID, "browser pool is closed")
	}

	if p.current == nil || p.current.leased >= p.maxRenders() {
		inst, err := p.Launch()
		switch {
		case err != nil && p.current == nil:
			return nil, nil, err
		case err == nil:
			p.retire(p.current)
			p.current = &generation{inst: inst}
			if p.live == nil {
				p.live = make(map[*generation]struct{})
			}
			p.live[p.current] = struct{}{}
		}
		// A failed relaunch keeps serving renders from the old browser.
	}

	g := p.current
	g.leased++
	g.inflight++

	var once sync.Once
	release := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			g.inflight--
			if g.retired && g.inflight == 0 {
				p.shutdown(g)
			}
		})
	}
	return g.inst.Browser, release, nil
}

// Live returns the number of browsers not yet closed.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// Close shuts down every browser, including those still serving renders.
// Close is safe to call multiple times.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.current = nil

	var firstErr error
	for g := range p.live {
		if err := p.shutdown(g); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// retire marks g as replaced, closing it at once when no render holds it.
// Must be called with mu held.
func (p *Pool) retire(g *generation) {
	if g == nil {
		return
	}
	g.retired = true
	if g.inflight == 0 {
		_ = p.shutdown(g)
	}
}

// shutdown closes g. Must be called with mu held.
func (p *Pool) shutdown(g *generation) error {
	if _, ok := p.live[g]; !ok {
		return nil
	}
	delete(p.live, g)
	if g.inst.Close == nil {
		return nil
	}
	return g.inst.Close()
}

func (p *Pool) maxRenders() int {
	if p.MaxRenders <= 0 {
		return DefaultMaxRenders
	}
	return p.MaxRenders
}

// LaunchChrome starts headless Chrome with flags that keep background
// tabs rendering and hide the automation marker publishers check for.
func LaunchChrome() (*Instance, error) {
	l := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Instance{
		Browser: browser,
		Close: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
