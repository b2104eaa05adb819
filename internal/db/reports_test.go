package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quipucords/quipucords/internal/model"
)

func TestReport_InsertLeavesReportIDAsGiven(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &model.DeploymentsReport{ReportVersion: "1.0", Status: "complete"}
	require.NoError(t, s.InsertReport(ctx, r))
	assert.NotZero(t, r.ID)
	assert.Zero(t, r.ReportID)

	got, err := s.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ReportID)
	assert.Equal(t, "complete", got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	assert.Error(t, s.InsertReport(ctx, r), "inserting a persisted report twice must fail")
}

func TestReport_UpdateReportID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &model.DeploymentsReport{Status: "pending"}
	require.NoError(t, s.InsertReport(ctx, r))
	require.NoError(t, s.UpdateReportID(ctx, r.ID, r.ID))

	got, err := s.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ReportID)
}

func TestReport_SaveInsertsThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &model.DeploymentsReport{Status: "pending"}
	require.NoError(t, s.SaveReport(ctx, r))
	require.NotZero(t, r.ID)

	r.Status = "complete"
	require.NoError(t, s.SaveReport(ctx, r))

	got, err := s.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", got.Status)

	n, err := s.CountReports(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing := &model.DeploymentsReport{ID: 9999}
	assert.ErrorIs(t, s.SaveReport(ctx, missing), ErrNotFound)
}

func TestFingerprints_InsertAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &model.DeploymentsReport{Status: "complete"}
	require.NoError(t, s.InsertReport(ctx, r))

	fps := []model.SystemFingerprint{
		{DeploymentReportID: r.ID, Name: "host-a", CPUCount: 2},
		{DeploymentReportID: r.ID, Name: "host-b", CPUCount: 4},
	}
	require.NoError(t, s.InsertFingerprints(ctx, fps))
	assert.NotZero(t, fps[0].ID)
	assert.NotEqual(t, fps[0].ID, fps[1].ID)

	got, err := s.FingerprintsForReport(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "host-a", got[0].Name)

	n, err := s.CountFingerprints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.InsertFingerprints(ctx, nil))
	assert.Error(t, s.InsertFingerprints(ctx, []model.SystemFingerprint{{Name: "orphan"}}))
}

func TestGetReport_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetReport(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
