// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package security holds the redacting wrapper used for credential secrets
// (passwords and sudo passwords).
package security

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "********"

// Secret holds a password-like value. Formatting, JSON and text encoding
// always print a mask; only Reveal and the SQL driver see the raw value.
type Secret []byte

// FromString wraps s. An empty string yields an unset Secret.
func FromString(s string) Secret {
	if s == "" {
		return nil
	}
	return Secret(s)
}

// IsSet reports whether the secret carries a non-empty value.
func (s Secret) IsSet() bool { return len(s) > 0 }

// Reveal returns the raw value.
func (s Secret) Reveal() string { return string(s) }

// Len returns the length of the raw value in bytes.
func (s Secret) Len() int { return len(s) }

func (s Secret) String() string { return s.mask() }

// Format implements fmt.Formatter so every verb prints the mask.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, s.mask())
}

func (s Secret) mask() string {
	if !s.IsSet() {
		return ""
	}
	return redacted
}

// Zero overwrites the value in place.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(s.mask()) }

func (s Secret) MarshalText() ([]byte, error) { return []byte(s.mask()), nil }

// Value stores the raw value; unset secrets are stored as NULL.
func (s Secret) Value() (driver.Value, error) {
	if !s.IsSet() {
		return nil, nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Secret) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = FromString(string(v))
	case string:
		*s = FromString(v)
	default:
		return fmt.Errorf("security: cannot scan %T into Secret", src)
	}
	return nil
}
