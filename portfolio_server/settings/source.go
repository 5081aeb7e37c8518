package settings

import (
	"context"
	"fmt"
	"os"
	"portfolio-server/portfolio_server/data"
)

const (
	SourceStore = "store"
	SourceEnv   = "env"
)

type storeSource struct {
	data data.ISettingData
}

// NewStoreSource returns a source backed by the settings table.
//
// A missing record is created as a placeholder and reported as NotConfigured,
// so an operator can fill it in.
func NewStoreSource(d data.ISettingData) Source {
	return &storeSource{data: d}
}

func (s *storeSource) Name() string {
	return SourceStore
}

func (s *storeSource) Lookup(ctx context.Context, name string) Result {
	e, found, err := s.data.GetByName(ctx, name)
	if err != nil {
		return Result{Outcome: Unavailable, Err: err}
	}
	if !found {
		if err := s.data.CreatePlaceholder(ctx, name); err != nil {
			// the store answered, so this is still a missing record and not an outage
			return Result{Outcome: NotConfigured, Err: fmt.Errorf("create placeholder: %w", err)}
		}
		return Result{Outcome: NotConfigured}
	}
	if !e.IsSet() {
		return Result{Outcome: NotConfigured}
	}
	return Result{Outcome: Found, Value: e.Value}
}

func (s *storeSource) Set(ctx context.Context, name, value string) error {
	return s.data.Set(ctx, name, value)
}

type envSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource returns a source reading process environment variables.
// A nil lookup means os.LookupEnv.
func NewEnvSource(lookup func(string) (string, bool)) Source {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &envSource{lookup: lookup}
}

func (s *envSource) Name() string {
	return SourceEnv
}

func (s *envSource) Lookup(_ context.Context, name string) Result {
	v, ok := s.lookup(name)
	if !ok {
		return Result{Outcome: NotFound}
	}
	return Result{Outcome: Found, Value: v}
}
