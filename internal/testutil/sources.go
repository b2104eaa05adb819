package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quipucords/quipucords/internal/model"
)

// SourceStore is the persistence SourceFactory needs.
type SourceStore interface {
	InsertSourceOptions(ctx context.Context, o *model.SourceOptions) error
	InsertSource(ctx context.Context, src *model.Source) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sourceParams struct {
	source    model.Source
	options   *model.SourceOptions
	noOptions bool
}

// SourceOption overrides a field of the generated source.
type SourceOption func(*sourceParams)

// WithOptions uses o instead of generated options.
func WithOptions(o model.SourceOptions) SourceOption {
	return func(p *sourceParams) {
		p.options = &o
		p.noOptions = false
	}
}

// WithoutOptions produces a source with no options record.
func WithoutOptions() SourceOption {
	return func(p *sourceParams) {
		p.options = nil
		p.noOptions = true
	}
}

// WithSourceName overrides the generated unique name.
func WithSourceName(name string) SourceOption {
	return func(p *sourceParams) { p.source.Name = name }
}

// WithSourceType overrides the source type and its default port.
func WithSourceType(sourceType string) SourceOption {
	return func(p *sourceParams) {
		p.source.SourceType = sourceType
		p.source.Port = defaultPort(sourceType)
	}
}

// WithHosts overrides the host list.
func WithHosts(hosts ...string) SourceOption {
	return func(p *sourceParams) { p.source.Hosts = hosts }
}

func defaultPort(sourceType string) int {
	switch sourceType {
	case "network":
		return 22
	default:
		return 443
	}
}

// SourceFactory builds sources with, by default, an options record.
type SourceFactory struct {
	Store SourceStore
}

// Build returns an unsaved source.
func (f SourceFactory) Build(opts ...SourceOption) *model.Source {
	p := sourceParams{source: model.Source{
		Name:       "source-" + uuid.NewString(),
		SourceType: "network",
		Port:       22,
		Hosts:      []string{"192.0.2.10"},
	}}
	for _, opt := range opts {
		opt(&p)
	}

	src := p.source
	switch {
	case p.noOptions:
		src.Options = nil
	case p.options != nil:
		o := *p.options
		src.Options = &o
	default:
		src.Options = &model.SourceOptions{SSLCertVerify: true}
	}
	return &src
}

// Create persists the options record (unless suppressed) and then the
// source in one transaction.
func (f SourceFactory) Create(ctx context.Context, opts ...SourceOption) (*model.Source, error) {
	if f.Store == nil {
		return nil, errors.New("source factory: no store configured")
	}
	src := f.Build(opts...)
	err := f.Store.RunInTx(ctx, func(ctx context.Context) error {
		if src.Options != nil {
			if err := f.Store.InsertSourceOptions(ctx, src.Options); err != nil {
				return fmt.Errorf("create source options: %w", err)
			}
		}
		if err := f.Store.InsertSource(ctx, src); err != nil {
			return fmt.Errorf("create source: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}
