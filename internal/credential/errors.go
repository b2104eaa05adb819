package credential

import (
	"errors"

	"github.com/quipucords/quipucords/internal/i18n"
)

// Code identifies the rule a ValidationError reports.
type Code string

const (
	CodeMissingSecret      Code = "missing_secret"
	CodeConflictingSecrets Code = "conflicting_secrets"
	CodeInvalidKeyFile     Code = "invalid_key_file"
	CodeRequired           Code = "required"
	CodeMaxLength          Code = "max_length"
)

// Sentinels for errors.Is; they match any ValidationError with the same code.
var (
	ErrMissingSecret      = &ValidationError{Code: CodeMissingSecret}
	ErrConflictingSecrets = &ValidationError{Code: CodeConflictingSecrets}
	ErrInvalidKeyFile     = &ValidationError{Code: CodeInvalidKeyFile}
	ErrRequired           = &ValidationError{Code: CodeRequired}
	ErrMaxLength          = &ValidationError{Code: CodeMaxLength}
)

// ErrPassphraseRequired is returned by InspectKeyFile for an encrypted key
// when no passphrase was given.
var ErrPassphraseRequired = errors.New("key file is encrypted: passphrase required")

// ValidationError is a rejected credential. Field is empty for rules that
// span several fields.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	// catalog messages name the field themselves
	return e.Message
}

// Is matches on Code, and on Field when the target names one.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Field == "" || t.Field == e.Field)
}

func missingSecretError() *ValidationError {
	return &ValidationError{Code: CodeMissingSecret, Message: i18n.T("credential.pwd_or_keyfile")}
}

func conflictingSecretsError() *ValidationError {
	return &ValidationError{Code: CodeConflictingSecrets, Message: i18n.T("credential.not_both")}
}

// invalidKeyFileError reports the path exactly as the user submitted it.
func invalidKeyFileError(raw string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidKeyFile,
		Field:   FieldSSHKeyfile,
		Message: i18n.T("credential.key_invalid", map[string]any{"Path": raw}),
	}
}

func requiredError(field string) *ValidationError {
	return &ValidationError{
		Code:    CodeRequired,
		Field:   field,
		Message: i18n.T("credential.field_required", map[string]any{"Field": field}),
	}
}

func maxLengthError(field string, limit int) *ValidationError {
	return &ValidationError{
		Code:    CodeMaxLength,
		Field:   field,
		Message: i18n.T("credential.field_max_length", map[string]any{"Field": field, "Max": limit}),
	}
}
