package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quipucords/quipucords/internal/model"
)

// Range of the fingerprint count drawn when none is given to Create.
const (
	DefaultMinFingerprints = 1
	DefaultMaxFingerprints = 5
)

// ErrFingerprintsRequireCreate is returned by Build when a fingerprint count
// was requested: fingerprints can only be attached to a persisted report.
var ErrFingerprintsRequireCreate = errors.New("number of fingerprints can only be set when creating a persisted report")

// ReportStore is the persistence DeploymentReportFactory needs.
type ReportStore interface {
	InsertReport(ctx context.Context, r *model.DeploymentsReport) error
	InsertFingerprints(ctx context.Context, fps []model.SystemFingerprint) error
	UpdateReportID(ctx context.Context, id, reportID int) error
	// RunInTx runs fn atomically; the methods above join the transaction
	// when called with the ctx passed to fn.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type reportParams struct {
	report       model.DeploymentsReport
	fingerprints *int
}

// ReportOption overrides a field of the generated report.
type ReportOption func(*reportParams)

// WithNumberOfFingerprints sets how many fingerprints Create attaches.
func WithNumberOfFingerprints(n int) ReportOption {
	return func(p *reportParams) { p.fingerprints = &n }
}

// WithReportStatus overrides the report status.
func WithReportStatus(status string) ReportOption {
	return func(p *reportParams) { p.report.Status = status }
}

// WithReportVersion overrides the report version.
func WithReportVersion(version string) ReportOption {
	return func(p *reportParams) { p.report.ReportVersion = version }
}

// DeploymentReportFactory builds deployment reports and their fingerprints.
type DeploymentReportFactory struct {
	Store ReportStore
	Rand  IntRange
}

func newReportParams(opts []ReportOption) reportParams {
	p := reportParams{report: model.DeploymentsReport{
		ReportVersion: "1.0.0",
		Status:        "complete",
	}}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Build returns an unsaved report with no fingerprints. ID and ReportID stay
// zero, and saving the report later does not set ReportID.
func (f DeploymentReportFactory) Build(opts ...ReportOption) (*model.DeploymentsReport, error) {
	p := newReportParams(opts)
	if p.fingerprints != nil {
		return nil, ErrFingerprintsRequireCreate
	}
	r := p.report
	return &r, nil
}

// Create persists a report, then its fingerprints, then stamps ReportID with
// the assigned ID, all in one transaction. On failure nothing is kept.
func (f DeploymentReportFactory) Create(ctx context.Context, opts ...ReportOption) (*model.DeploymentsReport, error) {
	if f.Store == nil {
		return nil, errors.New("deployment report factory: no store configured")
	}
	p := newReportParams(opts)

	n, err := f.fingerprintCount(p)
	if err != nil {
		return nil, err
	}

	r := p.report
	var fps []model.SystemFingerprint
	err = f.Store.RunInTx(ctx, func(ctx context.Context) error {
		if err := f.Store.InsertReport(ctx, &r); err != nil {
			return fmt.Errorf("create deployment report: %w", err)
		}

		fps = make([]model.SystemFingerprint, n)
		for i := range fps {
			fps[i] = newFingerprint(r.ID, i)
		}
		if err := f.Store.InsertFingerprints(ctx, fps); err != nil {
			return fmt.Errorf("create fingerprints of report %d: %w", r.ID, err)
		}

		if err := f.Store.UpdateReportID(ctx, r.ID, r.ID); err != nil {
			return fmt.Errorf("stamp report_id of report %d: %w", r.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.SystemFingerprints = fps
	r.ReportID = r.ID
	return &r, nil
}

// CreateBatch runs Create size times with the same options.
func (f DeploymentReportFactory) CreateBatch(ctx context.Context, size int, opts ...ReportOption) ([]*model.DeploymentsReport, error) {
	if size < 0 {
		return nil, fmt.Errorf("batch size must not be negative, got %d", size)
	}
	out := make([]*model.DeploymentsReport, 0, size)
	for i := 0; i < size; i++ {
		r, err := f.Create(ctx, opts...)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (f DeploymentReportFactory) fingerprintCount(p reportParams) (int, error) {
	if p.fingerprints != nil {
		if *p.fingerprints < 0 {
			return 0, fmt.Errorf("number of fingerprints must not be negative, got %d", *p.fingerprints)
		}
		return *p.fingerprints, nil
	}
	rnd := f.Rand
	if rnd == nil {
		rnd = DefaultRand
	}
	return rnd.IntBetween(DefaultMinFingerprints, DefaultMaxFingerprints), nil
}

var (
	osReleases    = []string{"Red Hat Enterprise Linux 8.6", "Red Hat Enterprise Linux 9.2", "CentOS Linux 7", "Fedora 38"}
	architectures = []string{"x86_64", "aarch64", "ppc64le", "s390x"}
)

func newFingerprint(reportID, i int) model.SystemFingerprint {
	id := uuid.NewString()
	return model.SystemFingerprint{
		DeploymentReportID: reportID,
		Name:               "host-" + id[:8],
		BIOSUUID:           id,
		OSRelease:          osReleases[i%len(osReleases)],
		CPUCount:           1 << (i % 4),
		Architecture:       architectures[i%len(architectures)],
	}
}
