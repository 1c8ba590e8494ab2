package principals

// namedResolver overrides the machine name reported by another resolver.
type namedResolver struct {
	Resolver
	name string
}

// WithMachineName returns a resolver identical to r but reporting the given
// machine name. Used when the configuration pins the name instead of
// auto-detecting it.
func WithMachineName(r Resolver, name string) Resolver {
	if name == "" {
		return r
	}
	return &namedResolver{Resolver: r, name: name}
}

func (r *namedResolver) MachineName() string {
	return r.name
}
