// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package i18n provides the localized user-facing messages of quipucords.
// Messages are looked up by ID from YAML catalogs embedded in the binary.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads every embedded catalog and selects lang. Unknown languages fall
// back to English.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	tag := matchLang(b, lang)

	mu.Lock()
	bundle = b
	localizer = i18n.NewLocalizer(b, tag)
	current = tag
	mu.Unlock()
}

func matchLang(b *i18n.Bundle, lang string) string {
	tags := b.LanguageTags()
	want, err := language.Parse(lang)
	if err != nil {
		return language.English.String()
	}
	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return language.English.String()
	}
	return tags[idx].String()
}

// SetLang switches the active language.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language tag.
func GetLang() string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLocales lists the language tags with an embedded catalog.
func AvailableLocales() []string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(bundle.LanguageTags()))
	for _, t := range bundle.LanguageTags() {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

func ensure() {
	mu.RLock()
	ready := localizer != nil
	mu.RUnlock()
	if !ready {
		Init("en")
	}
}

// T translates messageID. A single map argument is used as template data
// ({{.Path}}); other arguments are applied fmt-style to the translation.
// Unknown IDs return the ID itself.
func T(messageID string, args ...any) string {
	ensure()

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	var fmtArgs []any
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
		} else {
			fmtArgs = args
		}
	} else {
		fmtArgs = args
	}

	mu.RLock()
	msg, err := localizer.Localize(cfg)
	mu.RUnlock()
	if err != nil {
		msg = messageID
	}
	if len(fmtArgs) > 0 && strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, fmtArgs...)
	}
	return msg
}
