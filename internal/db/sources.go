package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/quipucords/quipucords/internal/model"
)

// InsertSourceOptions persists o and sets o.ID.
func (s *Store) InsertSourceOptions(ctx context.Context, o *model.SourceOptions) error {
	m := SourceOptionsModel{
		SSLCertVerify: o.SSLCertVerify,
		SSLProtocol:   o.SSLProtocol,
		DisableSSL:    o.DisableSSL,
		UseParamiko:   o.UseParamiko,
	}
	if _, err := s.conn(ctx).NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return MapDBError(err)
	}
	o.ID = m.ID
	return nil
}

// InsertSource persists src and sets src.ID. When src.Options is set it must
// already be persisted; its ID is linked as options_id.
func (s *Store) InsertSource(ctx context.Context, src *model.Source) error {
	if src.Options != nil {
		if src.Options.ID == 0 {
			return fmt.Errorf("insert source %q: options not persisted", src.Name)
		}
		src.OptionsID = src.Options.ID
	}
	m := SourceModel{
		Name:       src.Name,
		SourceType: src.SourceType,
		Port:       src.Port,
		Hosts:      strings.Join(src.Hosts, ","),
		OptionsID:  nullInt(src.OptionsID),
	}
	if _, err := s.conn(ctx).NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return MapDBError(err)
	}
	src.ID = m.ID
	return nil
}

// GetSource loads a source and, when linked, its options.
func (s *Store) GetSource(ctx context.Context, id int) (*model.Source, error) {
	var m SourceModel
	if err := s.conn(ctx).NewSelect().Model(&m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	src := sourceToModel(m)
	if src.OptionsID != 0 {
		var om SourceOptionsModel
		if err := s.conn(ctx).NewSelect().Model(&om).Where("id = ?", src.OptionsID).Scan(ctx); err != nil {
			return nil, fmt.Errorf("load options of source %d: %w", id, MapDBError(err))
		}
		src.Options = sourceOptionsToModel(om)
	}
	return &src, nil
}

// CountSources returns the number of stored sources.
func (s *Store) CountSources(ctx context.Context) (int, error) {
	return s.conn(ctx).NewSelect().Model((*SourceModel)(nil)).Count(ctx)
}

// CountSourceOptions returns the number of stored source options.
func (s *Store) CountSourceOptions(ctx context.Context) (int, error) {
	return s.conn(ctx).NewSelect().Model((*SourceOptionsModel)(nil)).Count(ctx)
}
