// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package model holds the plain domain types shared by the storage layer,
// the credential validator and the fixture factories.
package model

import (
	"fmt"
	"time"

	"github.com/quipucords/quipucords/internal/security"
)

// Credential is stored authentication material used to SSH into a managed host.
// Exactly one of Password or SSHKeyfile is set on a validated credential.
type Credential struct {
	ID           int
	Name         string
	Username     string
	Password     security.Secret
	SudoPassword security.Secret
	SSHKeyfile   string
}

// String returns "name (username)".
func (c Credential) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Username)
}

// AuthMethod reports how the credential authenticates: "ssh_keyfile" or "password".
func (c Credential) AuthMethod() string {
	if c.SSHKeyfile != "" {
		return "ssh_keyfile"
	}
	return "password"
}

// DeploymentsReport groups the system fingerprints produced by a scan.
// ReportID is zero until something explicitly stamps it.
type DeploymentsReport struct {
	ID            int
	ReportID      int
	ReportVersion string
	Status        string
	CreatedAt     time.Time

	SystemFingerprints []SystemFingerprint
}

// Persisted reports whether the report has been assigned an identity.
func (r *DeploymentsReport) Persisted() bool {
	return r != nil && r.ID != 0
}

// SystemFingerprint is the per-system record captured in a deployment report.
type SystemFingerprint struct {
	ID                 int
	DeploymentReportID int
	Name               string
	BIOSUUID           string
	OSRelease          string
	CPUCount           int
	Architecture       string
}

// Source describes a set of hosts to scan. Options is nil when the source
// has no options record.
type Source struct {
	ID         int
	Name       string
	SourceType string
	Port       int
	Hosts      []string
	OptionsID  int
	Options    *SourceOptions
}

// SourceOptions is the optional one-to-one settings record of a Source.
type SourceOptions struct {
	ID            int
	SSLCertVerify bool
	SSLProtocol   string
	DisableSSL    bool
	UseParamiko   bool
}
