package credential

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// KeyInfo describes the public half of a stored private key.
type KeyInfo struct {
	Type          string
	Fingerprint   string
	AuthorizedKey string
}

// InspectKeyFile parses the private key at path. passphrase is only used
// when the key is encrypted.
func InspectKeyFile(path string, passphrase []byte) (KeyInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyInfo{}, fmt.Errorf("read key file: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(data)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if len(passphrase) == 0 {
			return KeyInfo{}, ErrPassphraseRequired
		}
		signer, err = ssh.ParsePrivateKeyWithPassphrase(data, passphrase)
	}
	if err != nil {
		return KeyInfo{}, fmt.Errorf("parse key file %s: %w", path, err)
	}

	pub := signer.PublicKey()
	return KeyInfo{
		Type:          pub.Type(),
		Fingerprint:   ssh.FingerprintSHA256(pub),
		AuthorizedKey: strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub))),
	}, nil
}
