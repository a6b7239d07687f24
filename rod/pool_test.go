package rod_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/berita"
	"github.com/fwojciec/berita/rod"
	gorod "github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLauncher hands out distinct browsers and records which were closed.
type fakeLauncher struct {
	mu       sync.Mutex
	launched []*gorod.Browser
	closed   map[*gorod.Browser]int
	fail     bool
}

func (l *fakeLauncher) launch() (*rod.Instance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return nil, errors.New("chrome not found")
	}
	b := &gorod.Browser{}
	l.launched = append(l.launched, b)
	return &rod.Instance{Browser: b, Close: func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed == nil {
			l.closed = make(map[*gorod.Browser]int)
		}
		l.closed[b]++
		return nil
	}}, nil
}

func (l *fakeLauncher) closeCount(b *gorod.Browser) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed[b]
}

func (l *fakeLauncher) launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.launched)
}

func TestPool_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("shares one browser until the render limit", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch, MaxRenders: 3}
		defer p.Close()

		var browsers []*gorod.Browser
		for range 3 {
			b, release, err := p.Acquire()
			require.NoError(t, err)
			release()
			browsers = append(browsers, b)
		}

		assert.Equal(t, 1, l.launches())
		assert.Same(t, browsers[0], browsers[2])
	})

	t.Run("launches a fresh browser after the limit", func(t *testing.T) {
		t.Parallel()

		// Given a pool that replaces its browser after two renders
		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch, MaxRenders: 2}
		defer p.Close()
		first, r1, err := p.Acquire()
		require.NoError(t, err)
		r1()
		_, r2, err := p.Acquire()
		require.NoError(t, err)
		r2()

		// When a third render starts
		third, r3, err := p.Acquire()
		require.NoError(t, err)
		defer r3()

		// Then it gets a new browser and the idle old one is closed
		assert.NotSame(t, first, third)
		assert.Equal(t, 1, l.closeCount(first))
		assert.Equal(t, 1, p.Live())
	})

	t.Run("replaced browser outlives renders still using it", func(t *testing.T) {
		t.Parallel()

		// Given a render holding the browser when the limit is reached
		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch, MaxRenders: 1}
		defer p.Close()
		first, releaseFirst, err := p.Acquire()
		require.NoError(t, err)

		// When the next render triggers a replacement
		second, releaseSecond, err := p.Acquire()
		require.NoError(t, err)
		defer releaseSecond()

		// Then the old browser stays open for the running render
		assert.NotSame(t, first, second)
		assert.Zero(t, l.closeCount(first))
		assert.Equal(t, 2, p.Live())

		// And is closed once that render releases it
		releaseFirst()
		releaseFirst()
		assert.Equal(t, 1, l.closeCount(first))
		assert.Equal(t, 1, p.Live())
	})

	t.Run("failed relaunch keeps the old browser", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch, MaxRenders: 1}
		defer p.Close()
		first, release, err := p.Acquire()
		require.NoError(t, err)
		release()

		l.mu.Lock()
		l.fail = true
		l.mu.Unlock()

		again, release, err := p.Acquire()
		require.NoError(t, err)
		release()
		assert.Same(t, first, again)
		assert.Zero(t, l.closeCount(first))
	})

	t.Run("first launch failure is returned", func(t *testing.T) {
		t.Parallel()

		p := &rod.Pool{Launch: (&fakeLauncher{fail: true}).launch}

		_, _, err := p.Acquire()

		require.EqualError(t, err, "chrome not found")
	})

	t.Run("concurrent renders across replacements close every browser once", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch, MaxRenders: 4}

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, release, err := p.Acquire()
				if assert.NoError(t, err) {
					release()
				}
			}()
		}
		wg.Wait()
		require.NoError(t, p.Close())

		assert.Equal(t, 13, l.launches())
		for _, b := range l.launched {
			assert.Equal(t, 1, l.closeCount(b))
		}
	})
}

func TestPool_Start(t *testing.T) {
	t.Parallel()

	t.Run("launches eagerly and reuses the browser", func(t *testing.T) {
		t.Parallel()

		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch}
		defer p.Close()

		require.NoError(t, p.Start())
		require.NoError(t, p.Start())
		_, release, err := p.Acquire()
		require.NoError(t, err)
		release()

		assert.Equal(t, 1, l.launches())
	})

	t.Run("reports a missing browser", func(t *testing.T) {
		t.Parallel()

		p := &rod.Pool{Launch: (&fakeLauncher{fail: true}).launch}

		assert.Error(t, p.Start())
	})
}

func TestPool_Close(t *testing.T) {
	t.Parallel()

	t.Run("closes browsers still in use and refuses new renders", func(t *testing.T) {
		t.Parallel()

		// Given a render holding the browser
		l := &fakeLauncher{}
		p := &rod.Pool{Launch: l.launch}
		b, release, err := p.Acquire()
		require.NoError(t, err)

		// When closing the pool twice
		require.NoError(t, p.Close())
		require.NoError(t, p.Close())
		release()

		// Then the browser is closed exactly once and acquiring fails
		assert.Equal(t, 1, l.closeCount(b))
		assert.Zero(t, p.Live())
		_, _, err = p.Acquire()
		assert.Equal(t, berita.EINVALID, berita.ErrorCode(err))
	})
}
