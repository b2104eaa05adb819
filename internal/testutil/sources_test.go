package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quipucords/quipucords/internal/db"
	"github.com/quipucords/quipucords/internal/model"
)

func TestSourceFactory_OptionDefault(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	src, err := SourceFactory{Store: s}.Create(ctx)
	require.NoError(t, err)
	assert.NotZero(t, src.ID)
	require.NotNil(t, src.Options)
	assert.NotZero(t, src.Options.ID)

	stored, err := s.GetSource(ctx, src.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Options)
	assert.Equal(t, src.Options.ID, stored.Options.ID)
}

func TestSourceFactory_OptionNone(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	src, err := SourceFactory{Store: s}.Create(ctx, WithoutOptions())
	require.NoError(t, err)
	assert.NotZero(t, src.ID)
	assert.Nil(t, src.Options)

	stored, err := s.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Options)

	n, err := s.CountSourceOptions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSourceFactory_ExplicitOptions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	src, err := SourceFactory{Store: s}.Create(ctx,
		WithSourceType("satellite"),
		WithSourceName("sat-1"),
		WithHosts("sat.example.com"),
		WithOptions(model.SourceOptions{SSLProtocol: "TLSv1_2", DisableSSL: true}),
	)
	require.NoError(t, err)

	stored, err := s.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "sat-1", stored.Name)
	assert.Equal(t, 443, stored.Port)
	assert.Equal(t, []string{"sat.example.com"}, stored.Hosts)
	require.NotNil(t, stored.Options)
	assert.True(t, stored.Options.DisableSSL)
	assert.Equal(t, "TLSv1_2", stored.Options.SSLProtocol)
}

func TestSourceFactory_LastOptionWins(t *testing.T) {
	f := SourceFactory{}
	assert.NotNil(t, f.Build(WithoutOptions(), WithOptions(model.SourceOptions{})).Options)
	assert.Nil(t, f.Build(WithOptions(model.SourceOptions{}), WithoutOptions()).Options)

	_, err := f.Create(context.Background())
	assert.Error(t, err)
}

func TestSourceFactory_UniqueNames(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	f := SourceFactory{Store: s}
	for i := 0; i < 5; i++ {
		_, err := f.Create(ctx)
		require.NoError(t, err)
	}
	n, err := s.CountSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSourceFactory_FailedCreateRollsBackOptions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	f := SourceFactory{Store: s}

	_, err := f.Create(ctx, WithSourceName("dup"))
	require.NoError(t, err)
	_, err = f.Create(ctx, WithSourceName("dup"))
	require.ErrorIs(t, err, db.ErrDuplicate)

	n, err := s.CountSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.CountSourceOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "options of the rejected source must not be kept")
}
