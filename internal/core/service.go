// Package core exposes the rate set service: it serializes reaction rates
// through the envelope registry, persists them in a rateset.Store and moves
// exported documents through a blob store.
package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"reactcore/internal/blob"
	"reactcore/pkg/nuclide"
	"reactcore/pkg/rateset"
	"reactcore/pkg/reaction"
	"reactcore/pkg/serial"
)

// ExportPrefix is prepended to rate set names to form default export keys.
const ExportPrefix = "rate-sets/"

// ErrNoBlobStore is returned by export and import when no blob store is configured.
var ErrNoBlobStore = errors.New("core: no blob store configured")

// Service coordinates the reaction registry with persistence and export.
type Service struct {
	interner *reaction.Interner
	catalog  nuclide.Catalog
	registry *serial.Registry
	store    rateset.Store
	blobs    blob.Store
	metrics  MetricsRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithInterner sets the flyweight interner used when decoding rate sets.
func WithInterner(in *reaction.Interner) Option {
	return func(s *Service) { s.interner = in }
}

// WithCatalog sets the nuclide catalog used when decoding rate sets.
func WithCatalog(catalog nuclide.Catalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

// WithBlobStore enables ExportRateSet and ImportRateSet.
func WithBlobStore(store blob.Store) Option {
	return func(s *Service) { s.blobs = store }
}

// WithMetrics installs a metrics recorder.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithLogger overrides the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a service over store. Without options it decodes
// through the process-wide interner and its catalog.
func NewService(store rateset.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("core: rate set store required")
	}
	s := &Service{
		store:   store,
		metrics: noopMetrics{},
		logger:  log.Logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.interner == nil {
		s.interner = reaction.Default()
	}
	if s.catalog == nil {
		s.catalog = s.interner.Catalog()
	}
	reg, err := reaction.NewRegistry(s.interner, s.catalog)
	if err != nil {
		return nil, err
	}
	s.registry = reg
	return s, nil
}

// Interner returns the interner rate sets are decoded into.
func (s *Service) Interner() *reaction.Interner { return s.interner }

// Catalog returns the nuclide catalog used for decoding.
func (s *Service) Catalog() nuclide.Catalog { return s.catalog }

// Registry returns the envelope registry.
func (s *Service) Registry() *serial.Registry { return s.registry }

// Store returns the rate set store.
func (s *Service) Store() rateset.Store { return s.store }

// Blobs returns the configured blob store, or nil.
func (s *Service) Blobs() blob.Store { return s.blobs }

// Close releases the rate set store.
func (s *Service) Close() error { return s.store.Close() }

func (s *Service) run(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	if err != nil {
		s.logger.Debug().Str("operation", op).Err(err).Msg("operation failed")
	}
	return err
}

// EncodeRates renders rates as a JSON array of ReactionRate envelopes.
func EncodeRates(rates []reaction.Rate) ([]byte, error) {
	return serial.MarshalList(rates)
}

// DecodeRates parses a JSON array of envelopes, rebuilding reactions through
// the service interner. Every item must be a ReactionRate.
func (s *Service) DecodeRates(data []byte) ([]reaction.Rate, error) {
	return DecodeRates(data, s.registry)
}

// DecodeRates parses a JSON array of ReactionRate envelopes with reg.
func DecodeRates(data []byte, reg *serial.Registry) ([]reaction.Rate, error) {
	items, err := serial.UnmarshalList(data, reg)
	if err != nil {
		return nil, err
	}
	out := make([]reaction.Rate, 0, len(items))
	for i, item := range items {
		rate, ok := item.(reaction.Rate)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %s", ErrNotRate, i, item.SerialTag())
		}
		out = append(out, rate)
	}
	return out, nil
}

// SaveRates serializes rates and stores them under name, replacing any
// previous set with that name.
func (s *Service) SaveRates(ctx context.Context, name string, rates []reaction.Rate) (rateset.Summary, error) {
	var summary rateset.Summary
	err := s.run(ctx, OpSaveRates, func() error {
		if err := rateset.ValidateName(name); err != nil {
			return err
		}
		payload, err := EncodeRates(rates)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		doc := rateset.Document{Name: name, Payload: payload, Count: len(rates), UpdatedAt: s.now()}
		if err := s.store.Put(ctx, doc); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		summary = doc.Summary()
		s.logger.Info().Str("rate_set", name).Int("count", len(rates)).Msg("rate set saved")
		return nil
	})
	return summary, err
}

func (s *Service) document(ctx context.Context, name string) (rateset.Document, error) {
	doc, err := s.store.Get(ctx, name)
	if errors.Is(err, rateset.ErrNotFound) {
		return rateset.Document{}, ErrNotFound{Kind: KindRateSet, Name: name}
	}
	if err != nil {
		return rateset.Document{}, fmt.Errorf("load %s: %w", name, err)
	}
	return doc, nil
}

// LoadRates returns the named rate set. Reactions come back as the interned
// instances of the service interner.
func (s *Service) LoadRates(ctx context.Context, name string) ([]reaction.Rate, error) {
	var rates []reaction.Rate
	err := s.run(ctx, OpLoadRates, func() error {
		doc, err := s.document(ctx, name)
		if err != nil {
			return err
		}
		rates, err = s.DecodeRates(doc.Payload)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	})
	return rates, err
}

// ListRateSets returns every stored rate set ordered by name.
func (s *Service) ListRateSets(ctx context.Context) ([]rateset.Summary, error) {
	var out []rateset.Summary
	err := s.run(ctx, OpListRateSets, func() error {
		var err error
		out, err = s.store.List(ctx)
		return err
	})
	return out, err
}

// DeleteRateSet removes the named rate set.
func (s *Service) DeleteRateSet(ctx context.Context, name string) error {
	return s.run(ctx, OpDeleteRateSet, func() error {
		removed, err := s.store.Delete(ctx, name)
		if err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		if !removed {
			return ErrNotFound{Kind: KindRateSet, Name: name}
		}
		s.logger.Info().Str("rate_set", name).Msg("rate set deleted")
		return nil
	})
}

// ExpandRateSet loads the named set and replaces every rate by its per-branch
// rates. Rates on reactions with the legacy empty branching contribute nothing.
func (s *Service) ExpandRateSet(ctx context.Context, name string) ([]reaction.Rate, error) {
	var out []reaction.Rate
	err := s.run(ctx, OpExpandRateSet, func() error {
		doc, err := s.document(ctx, name)
		if err != nil {
			return err
		}
		rates, err := s.DecodeRates(doc.Payload)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		out = ExpandRates(rates)
		return nil
	})
	return out, err
}

// ExpandRates expands every rate in order.
func ExpandRates(rates []reaction.Rate) []reaction.Rate {
	out := make([]reaction.Rate, 0, len(rates))
	for _, rate := range rates {
		out = slices.AppendSeq(out, rate.Expand())
	}
	return out
}

// ExportKey returns the default blob key for a rate set.
func ExportKey(name string) string { return ExportPrefix + name + ".json" }

// ExportRateSet writes the stored payload of name to the blob store under
// key (ExportKey(name) when empty). Existing keys are never overwritten.
func (s *Service) ExportRateSet(ctx context.Context, name, key string) (blob.Info, error) {
	var info blob.Info
	err := s.run(ctx, OpExportRateSet, func() error {
		if s.blobs == nil {
			return ErrNoBlobStore
		}
		if key == "" {
			key = ExportKey(name)
		}
		doc, err := s.document(ctx, name)
		if err != nil {
			return err
		}
		info, err = s.blobs.Put(ctx, key, bytes.NewReader(doc.Payload), blob.PutOptions{
			ContentType: "application/json",
			Metadata:    map[string]string{"rate_set": name, "count": strconv.Itoa(doc.Count)},
		})
		if err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		s.logger.Info().Str("rate_set", name).Str("key", key).Str("driver", string(s.blobs.Driver())).Msg("rate set exported")
		return nil
	})
	return info, err
}

// ImportRateSet reads an exported blob, validates it by decoding every
// envelope and stores it under name. An empty name reuses the rate_set
// metadata recorded at export.
func (s *Service) ImportRateSet(ctx context.Context, key, name string) (rateset.Summary, error) {
	var summary rateset.Summary
	err := s.run(ctx, OpImportRateSet, func() error {
		if s.blobs == nil {
			return ErrNoBlobStore
		}
		info, rc, err := s.blobs.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			return ErrNotFound{Kind: KindExport, Name: key}
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
		defer func() { _ = rc.Close() }()
		payload, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		if name == "" {
			name = info.Metadata["rate_set"]
		}
		if err := rateset.ValidateName(name); err != nil {
			return err
		}
		rates, err := s.DecodeRates(payload)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		doc := rateset.Document{Name: name, Payload: payload, Count: len(rates), UpdatedAt: s.now()}
		if err := s.store.Put(ctx, doc); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		summary = doc.Summary()
		s.logger.Info().Str("rate_set", name).Str("key", key).Int("count", len(rates)).Msg("rate set imported")
		return nil
	})
	return summary, err
}
