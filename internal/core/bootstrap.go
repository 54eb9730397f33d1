package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"reactcore/internal/blob"
	"reactcore/internal/config"
	"reactcore/internal/observability"
	"reactcore/pkg/nuclide"
	"reactcore/pkg/reaction"
)

// LoadCatalog builds the nuclide catalog named by cfg. Without a catalog file
// the process-wide table is used. A false NuclideFallback always disables
// placeholder resolution.
func LoadCatalog(cfg config.Config) (*nuclide.Table, error) {
	if cfg.NuclideCatalog == "" {
		table := nuclide.DefaultCatalog()
		table.SetFallback(cfg.NuclideFallback)
		return table, nil
	}
	table, err := nuclide.LoadTOML(cfg.NuclideCatalog)
	if err != nil {
		return nil, err
	}
	if !cfg.NuclideFallback {
		table.SetFallback(false)
	}
	return table, nil
}

// BlobConfig maps the blob section of cfg onto the blob factory.
func BlobConfig(cfg config.Blob) blob.Config {
	return blob.Config{
		Driver: blob.Driver(cfg.Driver),
		FSRoot: cfg.FSRoot,
		S3: blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	}
}

// Open wires a Service from validated configuration. The process-wide
// interner is reconfigured with the catalog and branching mode and reports
// lookups to Prometheus.
func Open(ctx context.Context, cfg config.Config) (*Service, error) {
	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	observability.RegisterMetrics()
	in := reaction.Default()
	in.Configure(
		reaction.WithBranching(cfg.BranchingMode()),
		reaction.WithCatalog(catalog),
		reaction.WithObserver(observability.InternMetrics{}),
	)
	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	blobs, err := blob.Open(ctx, BlobConfig(cfg.Blob))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	svc, err := NewService(store,
		WithInterner(in),
		WithCatalog(catalog),
		WithBlobStore(blobs),
		WithMetrics(observability.ServiceMetrics{}),
		WithLogger(log.Logger),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("blob", cfg.Blob.Driver).
		Str("branching", cfg.Branching).
		Msg("reaction service ready")
	return svc, nil
}
