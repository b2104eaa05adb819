package main

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/quipucords/quipucords/internal/i18n"
)

// findSubcommand walks the command tree depth first.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
		if found := findSubcommand(c, name); found != nil {
			return found
		}
	}
	return nil
}

type testEnv struct {
	dsn string
	dir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	return testEnv{dsn: filepath.Join(dir, "quipucords.db"), dir: dir}
}

// run executes a fresh root command against the env's database.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db-dsn", e.dsn, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTestKey(t *testing.T, dir string) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "test")
	require.NoError(t, err)
	path := filepath.Join(dir, "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestCommands_HelpText(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"credential", "add", "list", "show", "delete", "inspect-key", "seed", "config", "init"} {
		c := findSubcommand(root, name)
		require.NotNil(t, c, "%s command not found", name)
		assert.NotEmpty(t, c.Short, "%s missing short help", name)
	}
	assert.Contains(t, findSubcommand(root, "add").Long, "not both")
	assert.Contains(t, findSubcommand(root, "seed").Long, "fingerprints")
}

func TestCredentialAdd_Password(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "credential", "add", "--name", "lab", "--username", "root", "--password", "hunter2")
	require.NoError(t, err, out)
	assert.Contains(t, out, `Credential "lab" added`)

	out, err = env.run(t, "", "credential", "show", "lab")
	require.NoError(t, err, out)
	assert.Contains(t, out, "username:      root")
	assert.Contains(t, out, "password:      ********")
	assert.NotContains(t, out, "hunter2")
}

func TestCredentialAdd_AskPassword(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "s3cret\n", "credential", "add", "--name", "lab", "--username", "root", "--ask-password")
	require.NoError(t, err, out)

	out, err = env.run(t, "", "credential", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "lab")
	assert.Contains(t, out, "password")
}

func TestCredentialAdd_KeyfileExpanded(t *testing.T) {
	env := newTestEnv(t)
	writeTestKey(t, env.dir)
	t.Setenv("KEYDIR", env.dir)

	out, err := env.run(t, "", "credential", "add", "--name", "key", "--username", "admin", "--ssh-keyfile", "$KEYDIR/./id_ed25519")
	require.NoError(t, err, out)

	out, err = env.run(t, "", "credential", "show", "key")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ssh_keyfile:   "+filepath.Join(env.dir, "id_ed25519"))

	out, err = env.run(t, "", "credential", "inspect-key", "key")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ssh-ed25519 SHA256:")
}

func TestCredentialAdd_Rejected(t *testing.T) {
	env := newTestEnv(t)
	keyPath := writeTestKey(t, env.dir)

	cases := map[string][]string{
		"no secret":        {"--name", "a", "--username", "root"},
		"both secrets":     {"--name", "b", "--username", "root", "--password", "x", "--ssh-keyfile", keyPath},
		"missing keyfile":  {"--name", "c", "--username", "root", "--ssh-keyfile", "~/nope"},
		"missing username": {"--name", "d", "--password", "x"},
		"password and ask": {"--name", "e", "--username", "root", "--password", "x", "--ask-password"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.run(t, "", append([]string{"credential", "add"}, args...)...)
			assert.Error(t, err)
		})
	}

	out, err := env.run(t, "", "credential", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No credentials stored.")
}

func TestCredentialAdd_MissingKeyfileKeepsRawPath(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "credential", "add", "--name", "c", "--username", "root", "--ssh-keyfile", "~/nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "~/nope")
}

func TestCredentialDelete(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "credential", "add", "--name", "lab", "--username", "root", "--password", "x")
	require.NoError(t, err)

	out, err := env.run(t, "", "credential", "delete", "lab")
	require.NoError(t, err, out)
	assert.Contains(t, out, `Credential "lab" deleted.`)

	_, err = env.run(t, "", "credential", "delete", "lab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCredentialInspectKey_PasswordCredential(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "credential", "add", "--name", "lab", "--username", "root", "--password", "x")
	require.NoError(t, err)

	_, err = env.run(t, "", "credential", "inspect-key", "lab")
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "seed", "--reports", "3", "--fingerprints", "2", "--sources", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Seeded 3 reports (6 fingerprints) and 2 sources.")
}

func TestSeed_RandomFingerprints(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "seed", "--reports", "1", "--no-options", "--sources", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Seeded 1 reports")
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "--lang", "de", "config", "init")
	require.NoError(t, err, out)

	path := filepath.Join(env.dir, ".config", "quipucords", "quipucords.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "language: de")
	assert.Contains(t, string(data), env.dsn)
}

func TestVersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "quipucords version dev")
}

func TestStoreClosedWhenCommandFails(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "credential", "add", "--name", "lab", "--username", "root", "--password", "x")
	require.NoError(t, err)

	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db-dsn", env.dsn, "--log-level", "error", "credential", "inspect-key", "lab"})
	require.Error(t, cmd.Execute(), "password credentials have no key to inspect")
	assert.Nil(t, a.store)

	a = &app{}
	cmd = newRootCmd(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db-dsn", env.dsn, "--log-level", "error", "credential", "list"})
	require.NoError(t, cmd.Execute())
	assert.Nil(t, a.store)
}

func TestOpenStoreErrorKeepsCause(t *testing.T) {
	i18n.Init("en")
	a := &app{}
	a.cfg.Database.Type = "bogus"
	a.cfg.Database.Dsn = "x"

	_, err := a.openStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to initialize database: ")
	assert.Contains(t, err.Error(), "unsupported database type")
	assert.NotNil(t, errors.Unwrap(err))
}
