package settings

import (
	"fmt"
	"portfolio-server/pkg/log"
	"portfolio-server/portfolio_server/data"
)

// NewResolverFromNames builds a resolver with sources in the order of names.
// The store source needs d; it may be nil when "store" is not listed.
func NewResolverFromNames(logger log.ILogger, names []string, d data.ISettingData) (*Resolver, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no settings sources configured")
	}
	sources := make([]Source, 0, len(names))
	for _, n := range names {
		switch n {
		case SourceStore:
			if d == nil {
				return nil, fmt.Errorf("settings source %q needs a database", n)
			}
			sources = append(sources, NewStoreSource(d))
		case SourceEnv:
			sources = append(sources, NewEnvSource(nil))
		default:
			return nil, fmt.Errorf("unknown settings source: %q", n)
		}
	}
	return NewResolver(logger, sources...), nil
}
