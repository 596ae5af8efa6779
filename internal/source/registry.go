package source

import (
	"fmt"
	"io"
)

// Registry holds the opened sources in registration order. It owns their
// connection handles: walks borrow them, only Close releases them.
type Registry struct {
	order   []string
	sources map[string]Source
}

func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

func (r *Registry) Add(key string, conn Conn) error {
	if key == "" {
		return fmt.Errorf("source key is required")
	}
	if _, ok := r.sources[key]; ok {
		return fmt.Errorf("duplicate source key: %s", key)
	}
	r.order = append(r.order, key)
	r.sources[key] = Source{Key: key, Conn: conn}
	return nil
}

func (r *Registry) Resolve(key string) (Source, bool) {
	src, ok := r.sources[key]
	return src, ok
}

// All returns every source in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.sources[key])
	}
	return out
}

// Close closes every registered handle that supports closing.
// The first error is returned; remaining handles are still closed.
func (r *Registry) Close() error {
	var first error
	for _, key := range r.order {
		closer, ok := r.sources[key].Conn.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && first == nil {
			first = fmt.Errorf("close source %s: %w", key, err)
		}
	}
	return first
}
