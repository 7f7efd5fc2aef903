package bucket

import "github.com/hedisam/gobucket/worker"

// Factory spawns buckets for a registry, one per created name.
type Factory struct {
	opts Options
}

func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// Spawn implements worker.Factory.
func (f *Factory) Spawn() (worker.Handle, error) {
	return Start(f.opts), nil
}
