package operator

import (
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"

	"github.com/l7mp/opdispatch/pkg/compiler"
)

type buildFunc func(c *compiler.Compiler) (*compiler.Program, error)

// cache is a concurrent get-or-insert map from keys to programs.
type cache struct {
	entries sync.Map // Key -> *compiler.Program
	group   *singleflight.Group
	builds  atomic.Int64
	state   atomic.Pointer[cacheState]
}

type cacheState struct {
	log      logr.Logger
	compiler *compiler.Compiler
}

func newCache(o options) *cache {
	c := &cache{}
	if o.guard {
		c.group = &singleflight.Group{}
	}
	c.state.Store(&cacheState{log: o.log, compiler: o.compiler})
	return c
}

// SetLogger replaces the logger of the table, together with the compiler used for later builds.
func (c *cache) SetLogger(log logr.Logger) {
	c.state.Store(&cacheState{log: log, compiler: compiler.New(log.WithName("compiler"))})
}

// Builds returns the number of programs built so far, i.e., the number of cache misses.
func (c *cache) Builds() int64 { return c.builds.Load() }

// Len returns the number of cached programs.
func (c *cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *cache) lookup(key Key) (*compiler.Program, bool) {
	if p, ok := c.entries.Load(key); ok {
		return p.(*compiler.Program), true
	}
	return nil, false
}

func (c *cache) get(key Key, build buildFunc) (*compiler.Program, error) {
	if p, ok := c.lookup(key); ok {
		return p, nil
	}

	if c.group == nil {
		return c.build(key, build)
	}

	p, err, _ := c.group.Do(key.id(), func() (any, error) {
		if p, ok := c.lookup(key); ok {
			return p, nil
		}
		return c.build(key, build)
	})
	if err != nil {
		return nil, err
	}
	return p.(*compiler.Program), nil
}

func (c *cache) build(key Key, build buildFunc) (*compiler.Program, error) {
	st := c.state.Load()
	c.builds.Add(1)

	p, err := build(st.compiler)
	if err != nil {
		st.log.Error(err, "failed to build operation", "key", key.String())
		return nil, err
	}

	actual, loaded := c.entries.LoadOrStore(key, p)
	if loaded {
		st.log.V(4).Info("concurrent build lost the race, using the published program",
			"key", key.String())
		return actual.(*compiler.Program), nil
	}

	if !p.Supported() {
		st.log.V(2).Info("operation is not supported, memoizing failure", "key", key.String(),
			"error", p.Err().Error())
	} else {
		st.log.V(4).Info("operation compiled", "key", key.String(), "program", p.String())
	}

	return p, nil
}
