package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quipucords/quipucords/internal/credential"
	"github.com/quipucords/quipucords/internal/db"
	"github.com/quipucords/quipucords/internal/i18n"
	"github.com/quipucords/quipucords/internal/logging"
	"github.com/quipucords/quipucords/internal/model"
)

func newCredentialCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credential",
		Aliases: []string{"cred"},
		Short:   "Manage host credentials",
		Long:    `Add, list, show, delete and inspect the SSH credentials used to connect to hosts.`,
	}
	cmd.AddCommand(newCredentialAddCmd(a))
	cmd.AddCommand(newCredentialListCmd(a))
	cmd.AddCommand(newCredentialShowCmd(a))
	cmd.AddCommand(newCredentialDeleteCmd(a))
	cmd.AddCommand(newCredentialInspectKeyCmd(a))
	return cmd
}

// stringFlag returns the flag value when the user set it, nil otherwise.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// readSecret prompts on a terminal without echo, or reads one line from a
// non-terminal input.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newCredentialAddCmd(a *app) *cobra.Command {
	var askPassword bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a host credential",
		Long: `Adds a host credential. Supply either --password (or --ask-password) or
--ssh-keyfile, not both. The key file path may use ~ and environment
variables; it is stored as an absolute path and must exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs := credential.Attrs{
				Name:         stringFlag(cmd, "name"),
				Username:     stringFlag(cmd, "username"),
				Password:     stringFlag(cmd, "password"),
				SudoPassword: stringFlag(cmd, "sudo-password"),
				SSHKeyfile:   stringFlag(cmd, "ssh-keyfile"),
			}
			if askPassword {
				pw, err := readSecret(cmd, i18n.T("cli.password_prompt"))
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				attrs.Password = &pw
			}

			valid, err := credential.Check(attrs)
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			c, err := store.AddCredential(cmd.Context(), valid.Credential())
			if err != nil {
				return fmt.Errorf("store credential: %w", err)
			}
			logging.Infof("credential %s added using %s", c, c.AuthMethod())
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.credential_added", c.Name, c.ID))
			return nil
		},
	}

	cmd.Flags().String("name", "", "unique credential name")
	cmd.Flags().String("username", "", "user to log in as")
	cmd.Flags().String("password", "", "login password")
	cmd.Flags().BoolVar(&askPassword, "ask-password", false, "read the login password from the terminal")
	cmd.Flags().String("sudo-password", "", "password for privilege escalation")
	cmd.Flags().String("ssh-keyfile", "", "path to the SSH private key")
	cmd.MarkFlagsMutuallyExclusive("password", "ask-password")
	return cmd
}

func newCredentialListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List host credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			creds, err := store.ListCredentials(cmd.Context())
			if err != nil {
				return err
			}
			if len(creds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_credentials"))
				return nil
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "USERNAME", "AUTH", "SSH KEYFILE").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				})
			for _, c := range creds {
				t.Row(fmt.Sprint(c.ID), c.Name, c.Username, c.AuthMethod(), c.SSHKeyfile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

// lookupCredential opens the store and loads the named credential.
func lookupCredential(cmd *cobra.Command, a *app, name string) (*db.Store, model.Credential, error) {
	store, err := a.openStore(cmd.Context())
	if err != nil {
		return nil, model.Credential{}, err
	}
	c, err := store.GetCredentialByName(cmd.Context(), name)
	if errors.Is(err, db.ErrNotFound) {
		return nil, model.Credential{}, errors.New(i18n.T("cli.credential_not_found", name))
	}
	if err != nil {
		return nil, model.Credential{}, err
	}
	return store, c, nil
}

func newCredentialShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one host credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := lookupCredential(cmd, a, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:            %d\n", c.ID)
			fmt.Fprintf(out, "name:          %s\n", c.Name)
			fmt.Fprintf(out, "username:      %s\n", c.Username)
			fmt.Fprintf(out, "password:      %s\n", c.Password)
			fmt.Fprintf(out, "sudo_password: %s\n", c.SudoPassword)
			fmt.Fprintf(out, "ssh_keyfile:   %s\n", c.SSHKeyfile)
			return nil
		},
	}
}

func newCredentialDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a host credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, c, err := lookupCredential(cmd, a, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteCredential(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.credential_deleted", c.Name))
			return nil
		},
	}
}

func newCredentialInspectKeyCmd(a *app) *cobra.Command {
	var askPassphrase bool

	cmd := &cobra.Command{
		Use:   "inspect-key NAME",
		Short: "Show the type and fingerprint of a credential's SSH key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := lookupCredential(cmd, a, args[0])
			if err != nil {
				return err
			}
			if c.SSHKeyfile == "" {
				return fmt.Errorf("credential %q uses password authentication", c.Name)
			}

			var passphrase []byte
			if askPassphrase {
				p, err := readSecret(cmd, "Passphrase: ")
				if err != nil {
					return err
				}
				passphrase = []byte(p)
			}

			info, err := credential.InspectKeyFile(c.SSHKeyfile, passphrase)
			if errors.Is(err, credential.ErrPassphraseRequired) {
				return errors.New(i18n.T("credential.passphrase_required"))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", info.Type, info.Fingerprint, info.AuthorizedKey)
			return nil
		},
	}
	cmd.Flags().BoolVar(&askPassphrase, "ask-passphrase", false, "read the key passphrase from the terminal")
	return cmd
}
