package catalog

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/store"
)

// Fetcher retrieves the document at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Syncer downloads the published catalog and stores it where the reconciliation engine reads it.
// NewSyncer should be used to create instances of Syncer.
type Syncer struct {
	logger   hclog.Logger
	fetcher  Fetcher
	store    store.Setter
	validate bool
}

// NewSyncer creates a Syncer. When validate is true, catalogs are checked against the catalog schema
// and rejected before anything is stored.
func NewSyncer(logger hclog.Logger, fetcher Fetcher, s store.Setter, validate bool) (*Syncer, error) {
	if fetcher == nil || reflect.ValueOf(fetcher).IsNil() {
		return nil, fmt.Errorf("fetcher cannot be nil")
	}
	if s == nil || reflect.ValueOf(s).IsNil() {
		return nil, fmt.Errorf("store cannot be nil")
	}

	return &Syncer{
		logger:   logger.Named("catalog"),
		fetcher:  fetcher,
		store:    s,
		validate: validate,
	}, nil
}

// Sync fetches the catalog from url and replaces the stored catalog with it.
// It returns the number of server definitions stored.
// The stored catalog is left untouched when the download can't be fetched or decoded.
func (s *Syncer) Sync(ctx context.Context, url string) (int, error) {
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	data = bytes.TrimSpace(data)

	if s.validate {
		if err := Validate(data); err != nil {
			return 0, err
		}
	}

	defs, err := DecodeInner[Definition](data)
	if err != nil {
		return 0, err
	}

	if err := store.SaveServers(ctx, s.store, data); err != nil {
		return 0, fmt.Errorf("failed to store catalog: %w", err)
	}

	s.logger.Info("Catalog synced", "url", url, "servers", len(defs))

	return len(defs), nil
}
