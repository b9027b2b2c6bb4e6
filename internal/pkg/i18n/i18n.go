package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

//go:embed locales/*/messages.yaml
var embedded embed.FS

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
	once    sync.Once
)

// LoadTranslations reads <locale>/messages.yaml from every directory of fsys.
// Nested sections are flattened into dotted keys such as
// "APPLICATION_STATUS.PENDING".
func LoadTranslations(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	loaded := make(map[string]Translations)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(locale, "messages.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var sections map[string]map[string]string
		if err := yaml.Unmarshal(data, &sections); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		trans := make(Translations)
		for section, values := range sections {
			for key, value := range values {
				trans[section+"."+key] = value
			}
		}
		loaded[locale] = trans
	}

	mu.Lock()
	defer mu.Unlock()
	for locale, trans := range loaded {
		locales[locale] = trans
	}
	return nil
}

func ensureLoaded() {
	once.Do(func() {
		sub, err := fs.Sub(embedded, "locales")
		if err == nil {
			err = LoadTranslations(sub)
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to load embedded translations")
		}
	})
}

// Translate looks key up in locale, then in the default locale, and finally
// returns the key itself.
func Translate(locale, key string) string {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Format translates key and uses the result as a fmt template.
func Format(locale, key string, args ...any) string {
	return fmt.Sprintf(Translate(locale, key), args...)
}
