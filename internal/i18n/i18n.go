// Package i18n localizes provider display text from embedded YAML locale
// files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/agentstation/providerhub/pkg/errors"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when no locale is requested and as the fallback
// language for keys missing from the active locale.
var DefaultLocale = language.English

// Translator looks up display text in the active locale, then in
// DefaultLocale, then returns the caller's fallback literal.
type Translator struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	keys    map[language.Tag]map[string]struct{}

	mu       sync.RWMutex
	active   language.Tag
	printer  *message.Printer
	fallback *message.Printer
}

// New loads the embedded locales and activates the best match for locale.
func New(locale string) (*Translator, error) {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		return nil, errors.WrapIO("read", "locales", err)
	}
	return newFromFS(sub, locale)
}

// newFromFS loads every <tag>.yaml file at the root of fsys.
func newFromFS(fsys fs.FS, locale string) (*Translator, error) {
	t := &Translator{
		builder: catalog.NewBuilder(catalog.Fallback(DefaultLocale)),
		keys:    make(map[language.Tag]map[string]struct{}),
	}
	if err := t.load(fsys); err != nil {
		return nil, err
	}
	t.matcher = language.NewMatcher(t.tags)
	t.fallback = message.NewPrinter(DefaultLocale, message.Catalog(t.builder))
	t.SetLocale(locale)
	return t, nil
}

// load registers every locale file with the catalog builder. DefaultLocale
// goes first so the matcher prefers it on ties. Messages are stored as
// literals: a % in a locale string is escaped so the printer never reads
// it as a verb.
func (t *Translator) load(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return errors.WrapIO("read", "locales", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	t.tags = append(t.tags, DefaultLocale)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return errors.WrapParse("locale", name, err)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.WrapIO("read", name, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.WrapParse("yaml", name, err)
		}

		messages := make(map[string]string)
		flatten("", doc, messages)
		if t.keys[tag] == nil {
			t.keys[tag] = make(map[string]struct{}, len(messages))
		}
		for key, msg := range messages {
			if err := t.builder.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
				return errors.WrapResource("register", "message", key, err)
			}
			t.keys[tag][key] = struct{}{}
		}
		if tag != DefaultLocale {
			t.tags = append(t.tags, tag)
		}
	}
	return nil
}

// flatten turns nested maps into dotted keys.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// SetLocale activates the supported locale closest to locale. An empty or
// unparsable locale selects DefaultLocale.
func (t *Translator) SetLocale(locale string) {
	tag := DefaultLocale
	if locale != "" {
		_, index, confidence := t.matcher.Match(language.Make(locale))
		if confidence != language.No {
			tag = t.tags[index]
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = tag
	t.printer = message.NewPrinter(tag, message.Catalog(t.builder))
}

// Locale returns the active locale.
func (t *Translator) Locale() language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Locales returns the supported locales, DefaultLocale first.
func (t *Translator) Locales() []language.Tag {
	out := make([]language.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// Translate implements registry.Localizer.
func (t *Translator) Translate(key, fallback string) string {
	if key == "" {
		return fallback
	}

	t.mu.RLock()
	active, printer := t.active, t.printer
	t.mu.RUnlock()

	if t.has(active, key) {
		return printer.Sprintf(message.Key(key, fallback))
	}
	if t.has(DefaultLocale, key) {
		return t.fallback.Sprintf(message.Key(key, fallback))
	}
	return fallback
}

func (t *Translator) has(tag language.Tag, key string) bool {
	_, ok := t.keys[tag][key]
	return ok
}
