// Package settings resolves named configuration values from an ordered list of sources.
package settings

import (
	"context"
	"fmt"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/xerrors"
)

var (
	// ErrSettingNotConfigured matches settings whose store record still holds the placeholder.
	ErrSettingNotConfigured = xerrors.Sentinel(xerrors.KindSettingNotConfigured)
	// ErrSettingMissing matches settings that no source could provide.
	ErrSettingMissing = xerrors.Sentinel(xerrors.KindConfigurationMissing)
)

// Outcome is the result kind of a lookup in a single source.
type Outcome int

const (
	NotFound Outcome = iota
	Found
	// Unavailable means the source could not be queried.
	Unavailable
	// NotConfigured means the source knows the setting but has no value for it yet.
	NotConfigured
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Unavailable:
		return "unavailable"
	case NotConfigured:
		return "not configured"
	}
	return "not found"
}

type Result struct {
	Outcome Outcome
	Value   string
	Err     error
}

// Source is a place settings can be looked up in.
type Source interface {
	Name() string
	Lookup(ctx context.Context, name string) Result
}

type Resolver struct {
	log     log.ILogger
	sources []Source
}

func NewResolver(logger log.ILogger, sources ...Source) *Resolver {
	return &Resolver{log: logger, sources: sources}
}

// Sources returns the names of the sources in lookup order.
func (r *Resolver) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// Get returns the value of the setting name from the first source that has it.
//
// A source reporting NotConfigured ends the lookup with an error wrapping
// ErrSettingNotConfigured. Unavailable sources are skipped.
// When no source has the setting an error wrapping ErrSettingMissing is returned.
func (r *Resolver) Get(ctx context.Context, name string) (string, error) {
	for _, s := range r.sources {
		res := s.Lookup(ctx, name)
		switch res.Outcome {
		case Found:
			return res.Value, nil
		case NotConfigured:
			var err error
			if res.Err != nil {
				err = xerrors.Wrap(xerrors.KindSettingNotConfigured, res.Err, fmt.Sprintf(
					"setting %s not found in the %s and no placeholder record could be created. "+
						"Create the record with name=%s and enter its value", name, s.Name(), name))
			} else {
				err = xerrors.Newf(xerrors.KindSettingNotConfigured,
					"setting %s not found in the %s. A placeholder record has been created. "+
						"Look up the record with name=%s and enter its value", name, s.Name(), name)
			}
			r.log.WithField("setting", name).Error(err)
			return "", err
		case Unavailable:
			r.log.WithField("setting", name).WithField("source", s.Name()).Warnf("source unavailable: %v", res.Err)
		}
	}
	return "", xerrors.Newf(xerrors.KindConfigurationMissing, "setting %s not found in %v", name, r.Sources())
}

// Setter is implemented by sources that can store values.
type Setter interface {
	Set(ctx context.Context, name, value string) error
}

// Set stores value in the first source that supports writes.
func (r *Resolver) Set(ctx context.Context, name, value string) error {
	if name == "" {
		return xerrors.Newf(xerrors.KindInvalidArgument, "setting name must not be empty")
	}
	for _, s := range r.sources {
		if w, ok := s.(Setter); ok {
			if err := w.Set(ctx, name, value); err != nil {
				return fmt.Errorf("set %s in %s: %w", name, s.Name(), err)
			}
			return nil
		}
	}
	return xerrors.Newf(xerrors.KindInvalidArgument, "no writable settings source in %v", r.Sources())
}
