package db

import (
	"context"

	"github.com/quipucords/quipucords/internal/model"
)

// AddCredential inserts c and returns it with its assigned ID. c must have
// been validated by the credential package.
func (s *Store) AddCredential(ctx context.Context, c model.Credential) (model.Credential, error) {
	m := credentialFromModel(c)
	m.ID = 0
	if _, err := s.conn(ctx).NewInsert().Model(&m).Returning("id").Exec(ctx); err != nil {
		return model.Credential{}, MapDBError(err)
	}
	dbLogf("db: added credential %q (id %d)", m.Name, m.ID)
	return credentialToModel(m), nil
}

// GetCredential returns the credential with the given id.
func (s *Store) GetCredential(ctx context.Context, id int) (model.Credential, error) {
	var m CredentialModel
	if err := s.conn(ctx).NewSelect().Model(&m).Where("id = ?", id).Scan(ctx); err != nil {
		return model.Credential{}, MapDBError(err)
	}
	return credentialToModel(m), nil
}

// GetCredentialByName returns the credential with the given unique name.
func (s *Store) GetCredentialByName(ctx context.Context, name string) (model.Credential, error) {
	var m CredentialModel
	if err := s.conn(ctx).NewSelect().Model(&m).Where("name = ?", name).Scan(ctx); err != nil {
		return model.Credential{}, MapDBError(err)
	}
	return credentialToModel(m), nil
}

// ListCredentials returns all credentials ordered by name.
func (s *Store) ListCredentials(ctx context.Context) ([]model.Credential, error) {
	var ms []CredentialModel
	if err := s.conn(ctx).NewSelect().Model(&ms).Order("name").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Credential, 0, len(ms))
	for _, m := range ms {
		out = append(out, credentialToModel(m))
	}
	return out, nil
}

// DeleteCredential removes the credential with the given id.
func (s *Store) DeleteCredential(ctx context.Context, id int) error {
	res, err := s.conn(ctx).NewDelete().Model((*CredentialModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
