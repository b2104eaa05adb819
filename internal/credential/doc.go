// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package credential validates and normalizes host credentials submitted by
// users before they are stored.
//
// A host credential authenticates with exactly one of a password or an SSH
// key file. Check applies the per-field rules (required fields, maximum
// lengths) and then Validate, which enforces the password/key-file exclusion
// and rewrites the key file path to its expanded absolute form after
// confirming the file exists.
package credential
