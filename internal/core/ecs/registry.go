package ecs

// Registry remembers every component store so destruction can clear them all.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
