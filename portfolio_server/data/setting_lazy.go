package data

import (
	"context"
	"sync"
)

// SettingDataOpener connects to the settings store.
type SettingDataOpener func(ctx context.Context) (ISettingData, error)

type lazySettingData struct {
	mu   sync.Mutex
	open SettingDataOpener
	d    ISettingData
}

// NewLazySettingData returns a data layer that connects on first use.
// Every call retries the connection until it succeeds once, and returns the
// connection error until then, so a store that is down at startup reads as
// unavailable instead of preventing the start.
func NewLazySettingData(open SettingDataOpener) ISettingData {
	return &lazySettingData{open: open}
}

func (l *lazySettingData) get(ctx context.Context) (ISettingData, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.d != nil {
		return l.d, nil
	}
	d, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	l.d = d
	return d, nil
}

func (l *lazySettingData) EnsureSchema(ctx context.Context) error {
	_, err := l.get(ctx)
	return err
}

func (l *lazySettingData) GetByName(ctx context.Context, name string) (SettingEntity, bool, error) {
	d, err := l.get(ctx)
	if err != nil {
		return SettingEntity{}, false, err
	}
	return d.GetByName(ctx, name)
}

func (l *lazySettingData) CreatePlaceholder(ctx context.Context, name string) error {
	d, err := l.get(ctx)
	if err != nil {
		return err
	}
	return d.CreatePlaceholder(ctx, name)
}

func (l *lazySettingData) Set(ctx context.Context, name, value string) error {
	d, err := l.get(ctx)
	if err != nil {
		return err
	}
	return d.Set(ctx, name, value)
}

func (l *lazySettingData) GetAll(ctx context.Context) ([]SettingEntity, error) {
	d, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return d.GetAll(ctx)
}
