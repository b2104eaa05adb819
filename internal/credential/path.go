package credential

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"
)

// ExpandFilepath expands environment variables, then a leading ~ or ~user,
// then cleans the result and makes it absolute. An empty path is returned
// unchanged. Unset variables are left in place.
func ExpandFilepath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	expanded := expandVars(path)
	expanded, err := expandUser(expanded)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return abs, nil
}

// varRef matches $NAME and ${NAME}. Malformed references such as ${} or an
// unterminated ${ never match and are copied through.
var varRef = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// expandVars substitutes set variables only; unset ones stay as written.
func expandVars(path string) string {
	if !strings.Contains(path, "$") {
		return path
	}
	return varRef.ReplaceAllStringFunc(path, func(ref string) string {
		name := strings.TrimPrefix(ref[1:], "{")
		name = strings.TrimSuffix(name, "}")
		if name == "" {
			return ref
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}

func expandUser(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	sep := strings.IndexAny(path, `/\`)
	if sep < 0 {
		sep = len(path)
	}
	name, rest := path[1:sep], path[sep:]

	var home string
	if name == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			// $HOME unset: use the account database entry
			u, uerr := user.Current()
			if uerr != nil || u.HomeDir == "" {
				return "", fmt.Errorf("expand %q: %w", path, err)
			}
			h = u.HomeDir
		}
		home = h
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			// unknown user: leave the path as written
			return path, nil
		}
		home = u.HomeDir
	}
	return home + rest, nil
}

// isRegularFile follows symlinks.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
