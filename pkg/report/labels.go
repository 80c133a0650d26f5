package report

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Labels holds the wording and layout of the text format.
type Labels struct {
	// Header is the first line of the report.
	Header string `toml:"header"`
	// Separator frames the layer listing.
	Separator string `toml:"separator"`
	// Layer is a format string taking the layer index and vertex count.
	Layer string `toml:"layer"`
	// Vertices introduces the id list of a layer.
	Vertices string `toml:"vertices"`
	// Total is a format string taking the number of layers.
	Total string `toml:"total"`
	// BOM prefixes the report with a UTF-8 byte order mark.
	BOM bool `toml:"bom"`
	// Wrap is the number of ids per line; zero or less disables wrapping.
	Wrap int `toml:"wrap"`
}

// English is the default label pack.
var English = Labels{
	Header:    "Graph layer partition:",
	Separator: "=================================",
	Layer:     "Layer %d (vertex count: %d):",
	Vertices:  "Vertices:",
	Total:     "Total layers: %d",
	Wrap:      10,
}

// Russian reproduces the classic report wording, BOM included.
var Russian = Labels{
	Header:    "Результаты разбиения графа на слои:",
	Separator: "=================================",
	Layer:     "Слой %d (количество вершин: %d):",
	Vertices:  "Вершины:",
	Total:     "Общее количество слоёв: %d",
	BOM:       true,
	Wrap:      10,
}

var locales = map[string]Labels{
	"en": English,
	"ru": Russian,
}

// Locales lists the built-in label pack names.
func Locales() []string { return []string{"en", "ru"} }

// ForLocale returns the built-in pack for locale. The empty string selects
// English.
func ForLocale(locale string) (Labels, error) {
	if locale == "" {
		return English, nil
	}
	l, ok := locales[strings.ToLower(locale)]
	if !ok {
		return Labels{}, fmt.Errorf("unknown locale %q (available: %s)", locale, strings.Join(Locales(), ", "))
	}
	return l, nil
}

// LoadLabels decodes a TOML label pack from path on top of base.
// Unknown keys are rejected so a typo does not silently fall back.
func LoadLabels(path string, base Labels) (Labels, error) {
	l := base
	md, err := toml.DecodeFile(path, &l)
	if err != nil {
		return Labels{}, fmt.Errorf("decode labels %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Labels{}, fmt.Errorf("labels %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := l.Validate(); err != nil {
		return Labels{}, fmt.Errorf("labels %s: %w", path, err)
	}
	return l, nil
}

// Validate checks that the format strings carry their verbs.
func (l Labels) Validate() error {
	if strings.Count(l.Layer, "%d") != 2 {
		return fmt.Errorf("layer label %q must contain two %%d verbs", l.Layer)
	}
	if strings.Count(l.Total, "%d") != 1 {
		return fmt.Errorf("total label %q must contain one %%d verb", l.Total)
	}
	return nil
}
