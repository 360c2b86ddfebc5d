package application

import "github.com/bnema/yamcl/internal/domain"

// AddRuntimeCommand registers a runtime. Zero fields take the runtime defaults.
type AddRuntimeCommand struct {
	Path      string
	Label     string
	MinID     string
	MaxID     string
	HeapMaxMB int
	HeapMinMB int
	ExtraArgs string
}

func (c AddRuntimeCommand) runtime() domain.RuntimeConfig {
	runtime := domain.NewRuntimeConfig(c.Path)
	if c.Label != "" {
		runtime.Label = c.Label
	}
	if c.HeapMaxMB > 0 {
		runtime.HeapMaxMB = c.HeapMaxMB
	}
	if c.HeapMinMB > 0 {
		runtime.HeapMinMB = c.HeapMinMB
	}
	runtime.ExtraArgs = c.ExtraArgs
	runtime.Range = domain.ActiveRange(c.MinID, c.MaxID)

	return runtime
}

// UpdateRuntimeCommand changes the runtime at Index. Nil fields are left as stored.
type UpdateRuntimeCommand struct {
	Index     int
	Label     *string
	Range     *domain.ReleaseRange
	HeapMaxMB *int
	HeapMinMB *int
	ExtraArgs *string
}

func (c UpdateRuntimeCommand) apply(runtime domain.RuntimeConfig) domain.RuntimeConfig {
	if c.Label != nil {
		runtime.Label = *c.Label
	}
	if c.Range != nil {
		runtime.Range = *c.Range
	}
	if c.HeapMaxMB != nil {
		runtime.HeapMaxMB = *c.HeapMaxMB
	}
	if c.HeapMinMB != nil {
		runtime.HeapMinMB = *c.HeapMinMB
	}
	if c.ExtraArgs != nil {
		runtime.ExtraArgs = *c.ExtraArgs
	}

	return runtime
}
