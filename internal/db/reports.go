package db

import (
	"context"
	"fmt"
	"time"

	"github.com/quipucords/quipucords/internal/model"
)

// InsertReport persists a new report and sets r.ID. ReportID is written
// exactly as held by r.
func (s *Store) InsertReport(ctx context.Context, r *model.DeploymentsReport) error {
	if r.ID != 0 {
		return fmt.Errorf("insert report: already persisted with id %d", r.ID)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m := reportFromModel(r)
	if _, err := s.conn(ctx).NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return MapDBError(err)
	}
	r.ID = m.ID
	return nil
}

// SaveReport inserts r when it has no ID yet and updates it otherwise.
// Fingerprints are not touched.
func (s *Store) SaveReport(ctx context.Context, r *model.DeploymentsReport) error {
	if r.ID == 0 {
		return s.InsertReport(ctx, r)
	}
	m := reportFromModel(r)
	res, err := s.conn(ctx).NewUpdate().Model(&m).
		Column("report_id", "report_version", "status").
		WherePK().
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateReportID sets report_id on an existing report.
func (s *Store) UpdateReportID(ctx context.Context, id, reportID int) error {
	_, err := s.conn(ctx).NewUpdate().Model((*DeploymentsReportModel)(nil)).
		Set("report_id = ?", nullInt(reportID)).
		Where("id = ?", id).
		Exec(ctx)
	return MapDBError(err)
}

// GetReport loads a report together with its fingerprints.
func (s *Store) GetReport(ctx context.Context, id int) (*model.DeploymentsReport, error) {
	var m DeploymentsReportModel
	if err := s.conn(ctx).NewSelect().Model(&m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	r := reportToModel(m)
	fps, err := s.FingerprintsForReport(ctx, id)
	if err != nil {
		return nil, err
	}
	r.SystemFingerprints = fps
	return &r, nil
}

// CountReports returns the number of stored reports.
func (s *Store) CountReports(ctx context.Context) (int, error) {
	return s.conn(ctx).NewSelect().Model((*DeploymentsReportModel)(nil)).Count(ctx)
}

// InsertFingerprints bulk inserts fps, setting each ID.
func (s *Store) InsertFingerprints(ctx context.Context, fps []model.SystemFingerprint) error {
	if len(fps) == 0 {
		return nil
	}
	ms := make([]SystemFingerprintModel, len(fps))
	for i, f := range fps {
		if f.DeploymentReportID == 0 {
			return fmt.Errorf("insert fingerprint %d: no deployment report", i)
		}
		ms[i] = SystemFingerprintModel{
			DeploymentReportID: f.DeploymentReportID,
			Name:               f.Name,
			BIOSUUID:           f.BIOSUUID,
			OSRelease:          f.OSRelease,
			CPUCount:           f.CPUCount,
			Architecture:       f.Architecture,
		}
	}
	if _, err := s.conn(ctx).NewInsert().Model(&ms).Returning("id").Exec(ctx); err != nil {
		return MapDBError(err)
	}
	for i := range ms {
		fps[i].ID = ms[i].ID
	}
	return nil
}

// FingerprintsForReport returns the fingerprints of one report ordered by id.
func (s *Store) FingerprintsForReport(ctx context.Context, reportID int) ([]model.SystemFingerprint, error) {
	var ms []SystemFingerprintModel
	err := s.conn(ctx).NewSelect().Model(&ms).
		Where("deployment_report_id = ?", reportID).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.SystemFingerprint, 0, len(ms))
	for _, m := range ms {
		out = append(out, fingerprintToModel(m))
	}
	return out, nil
}

// CountFingerprints returns the number of stored fingerprints.
func (s *Store) CountFingerprints(ctx context.Context) (int, error) {
	return s.conn(ctx).NewSelect().Model((*SystemFingerprintModel)(nil)).Count(ctx)
}
