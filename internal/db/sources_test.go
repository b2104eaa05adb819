package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quipucords/quipucords/internal/model"
)

func TestSource_WithOptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	opts := &model.SourceOptions{SSLCertVerify: true, SSLProtocol: "TLSv1_2"}
	require.NoError(t, s.InsertSourceOptions(ctx, opts))
	require.NotZero(t, opts.ID)

	src := &model.Source{Name: "vc", SourceType: "vcenter", Port: 443, Hosts: []string{"10.0.0.1", "10.0.0.2"}, Options: opts}
	require.NoError(t, s.InsertSource(ctx, src))
	require.NotZero(t, src.ID)
	assert.Equal(t, opts.ID, src.OptionsID)

	got, err := s.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, got.Hosts)
	require.NotNil(t, got.Options)
	assert.Equal(t, "TLSv1_2", got.Options.SSLProtocol)
	assert.True(t, got.Options.SSLCertVerify)
}

func TestSource_WithoutOptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	src := &model.Source{Name: "net", SourceType: "network", Port: 22}
	require.NoError(t, s.InsertSource(ctx, src))

	got, err := s.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Options)
	assert.Zero(t, got.OptionsID)
	assert.Empty(t, got.Hosts)
}

func TestSource_UnsavedOptionsRejected(t *testing.T) {
	s := newTestStore(t)
	src := &model.Source{Name: "bad", SourceType: "network", Options: &model.SourceOptions{}}
	assert.Error(t, s.InsertSource(context.Background(), src))
}

func TestSource_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertSource(ctx, &model.Source{Name: "same", SourceType: "network"}))
	assert.ErrorIs(t, s.InsertSource(ctx, &model.Source{Name: "same", SourceType: "network"}), ErrDuplicate)
}
