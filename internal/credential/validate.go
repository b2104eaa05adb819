package credential

import (
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/quipucords/quipucords/internal/model"
	"github.com/quipucords/quipucords/internal/security"
)

// Field names as submitted by clients.
const (
	FieldName         = "name"
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldSudoPassword = "sudo_password"
	FieldSSHKeyfile   = "ssh_keyfile"
)

// Maximum field lengths in characters.
const (
	MaxNameLength     = 64
	MaxUsernameLength = 64
	MaxSecretLength   = 1024
	MaxKeyfileLength  = 1024
)

// Attrs are the submitted attributes of a host credential. A nil field was
// not submitted.
type Attrs struct {
	Name         *string
	Username     *string
	Password     *string
	SudoPassword *string
	SSHKeyfile   *string
}

// String returns a pointer to s, for building Attrs.
func String(s string) *string { return &s }

func present(p *string) bool { return p != nil && *p != "" }

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Credential converts validated attrs into a model.Credential.
func (a Attrs) Credential() model.Credential {
	return model.Credential{
		Name:         value(a.Name),
		Username:     value(a.Username),
		Password:     security.FromString(value(a.Password)),
		SudoPassword: security.FromString(value(a.SudoPassword)),
		SSHKeyfile:   value(a.SSHKeyfile),
	}
}

// Validate enforces that exactly one of password and ssh_keyfile is given
// and that the key file exists as a regular file. On success the returned
// attrs carry the expanded absolute key file path; attrs itself is not
// modified and no other field changes.
func Validate(attrs Attrs) (Attrs, error) {
	hasKey := present(attrs.SSHKeyfile)
	hasPassword := present(attrs.Password)

	if !hasPassword && !hasKey {
		return attrs, missingSecretError()
	}
	if hasPassword && hasKey {
		return attrs, conflictingSecretsError()
	}

	if hasKey {
		raw := *attrs.SSHKeyfile
		keyfile, err := ExpandFilepath(raw)
		if err != nil || !isRegularFile(keyfile) {
			return attrs, invalidKeyFileError(raw)
		}
		attrs.SSHKeyfile = &keyfile
	}
	return attrs, nil
}

type fieldRule struct {
	name     string
	value    *string
	required bool
	max      int
}

// ValidateFields checks required fields and maximum lengths. Every
// violation is reported; the result is a *multierror.Error of
// *ValidationError values, or nil.
func ValidateFields(attrs Attrs) error {
	rules := []fieldRule{
		{FieldName, attrs.Name, true, MaxNameLength},
		{FieldUsername, attrs.Username, true, MaxUsernameLength},
		{FieldPassword, attrs.Password, false, MaxSecretLength},
		{FieldSudoPassword, attrs.SudoPassword, false, MaxSecretLength},
		{FieldSSHKeyfile, attrs.SSHKeyfile, false, MaxKeyfileLength},
	}

	var result *multierror.Error
	for _, r := range rules {
		if r.required && !present(r.value) {
			result = multierror.Append(result, requiredError(r.name))
			continue
		}
		if r.value != nil && utf8.RuneCountInString(*r.value) > r.max {
			result = multierror.Append(result, maxLengthError(r.name, r.max))
		}
	}
	return result.ErrorOrNil()
}

// Check runs ValidateFields and then Validate.
func Check(attrs Attrs) (Attrs, error) {
	if err := ValidateFields(attrs); err != nil {
		return attrs, err
	}
	return Validate(attrs)
}
