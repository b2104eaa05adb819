// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/quipucords/quipucords/internal/model"
	"github.com/quipucords/quipucords/internal/security"
)

// CredentialModel maps the credentials table.
type CredentialModel struct {
	bun.BaseModel `bun:"table:credentials"`
	ID            int             `bun:"id,pk,autoincrement"`
	Name          string          `bun:"name"`
	Username      string          `bun:"username"`
	Password      security.Secret `bun:"password"`
	SudoPassword  security.Secret `bun:"sudo_password"`
	SSHKeyfile    sql.NullString  `bun:"ssh_keyfile"`
}

// SourceOptionsModel maps source_options.
type SourceOptionsModel struct {
	bun.BaseModel `bun:"table:source_options"`
	ID            int    `bun:"id,pk,autoincrement"`
	SSLCertVerify bool   `bun:"ssl_cert_verify"`
	SSLProtocol   string `bun:"ssl_protocol"`
	DisableSSL    bool   `bun:"disable_ssl"`
	UseParamiko   bool   `bun:"use_paramiko"`
}

// SourceModel maps sources. Hosts are stored comma separated.
type SourceModel struct {
	bun.BaseModel `bun:"table:sources"`
	ID            int           `bun:"id,pk,autoincrement"`
	Name          string        `bun:"name"`
	SourceType    string        `bun:"source_type"`
	Port          int           `bun:"port"`
	Hosts         string        `bun:"hosts"`
	OptionsID     sql.NullInt64 `bun:"options_id"`
}

// DeploymentsReportModel maps deployments_reports.
type DeploymentsReportModel struct {
	bun.BaseModel `bun:"table:deployments_reports"`
	ID            int           `bun:"id,pk,autoincrement"`
	ReportID      sql.NullInt64 `bun:"report_id"`
	ReportVersion string        `bun:"report_version"`
	Status        string        `bun:"status"`
	CreatedAt     time.Time     `bun:"created_at"`
}

// SystemFingerprintModel maps system_fingerprints.
type SystemFingerprintModel struct {
	bun.BaseModel      `bun:"table:system_fingerprints"`
	ID                 int    `bun:"id,pk,autoincrement"`
	DeploymentReportID int    `bun:"deployment_report_id"`
	Name               string `bun:"name"`
	BIOSUUID           string `bun:"bios_uuid"`
	OSRelease          string `bun:"os_release"`
	CPUCount           int    `bun:"cpu_count"`
	Architecture       string `bun:"architecture"`
}

// --- Mapping helpers ---

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func fromNullInt(v sql.NullInt64) int {
	if !v.Valid {
		return 0
	}
	return int(v.Int64)
}

func credentialToModel(c CredentialModel) model.Credential {
	out := model.Credential{
		ID:           c.ID,
		Name:         c.Name,
		Username:     c.Username,
		Password:     c.Password,
		SudoPassword: c.SudoPassword,
	}
	if c.SSHKeyfile.Valid {
		out.SSHKeyfile = c.SSHKeyfile.String
	}
	return out
}

func credentialFromModel(c model.Credential) CredentialModel {
	return CredentialModel{
		ID:           c.ID,
		Name:         c.Name,
		Username:     c.Username,
		Password:     c.Password,
		SudoPassword: c.SudoPassword,
		SSHKeyfile:   sql.NullString{String: c.SSHKeyfile, Valid: c.SSHKeyfile != ""},
	}
}

func sourceOptionsToModel(o SourceOptionsModel) *model.SourceOptions {
	return &model.SourceOptions{
		ID:            o.ID,
		SSLCertVerify: o.SSLCertVerify,
		SSLProtocol:   o.SSLProtocol,
		DisableSSL:    o.DisableSSL,
		UseParamiko:   o.UseParamiko,
	}
}

func sourceToModel(s SourceModel) model.Source {
	out := model.Source{
		ID:         s.ID,
		Name:       s.Name,
		SourceType: s.SourceType,
		Port:       s.Port,
		OptionsID:  fromNullInt(s.OptionsID),
	}
	if s.Hosts != "" {
		out.Hosts = strings.Split(s.Hosts, ",")
	}
	return out
}

func reportToModel(r DeploymentsReportModel) model.DeploymentsReport {
	return model.DeploymentsReport{
		ID:            r.ID,
		ReportID:      fromNullInt(r.ReportID),
		ReportVersion: r.ReportVersion,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func reportFromModel(r *model.DeploymentsReport) DeploymentsReportModel {
	return DeploymentsReportModel{
		ID:            r.ID,
		ReportID:      nullInt(r.ReportID),
		ReportVersion: r.ReportVersion,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func fingerprintToModel(f SystemFingerprintModel) model.SystemFingerprint {
	return model.SystemFingerprint{
		ID:                 f.ID,
		DeploymentReportID: f.DeploymentReportID,
		Name:               f.Name,
		BIOSUUID:           f.BIOSUUID,
		OSRelease:          f.OSRelease,
		CPUCount:           f.CPUCount,
		Architecture:       f.Architecture,
	}
}
