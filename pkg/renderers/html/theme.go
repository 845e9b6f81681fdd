package html

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultTheme is the built-in manifest every selector falls back to.
	DefaultTheme = "partner"
	// DefaultVariant is used when no variant is configured.
	DefaultVariant = "light"

	cssVarPrefix  = "--partner-"
	builtinTheme  = "themes/partner.yaml"
	unsafeCSSChars = "<>{};\\\n\r"
)

//go:embed themes/*.yaml
var embeddedThemes embed.FS

type rendererTheme struct {
	Name         string
	Variant      string
	CSSVarsStyle string
}

// NewThemeSelector registers the built-in manifest plus extras and returns a
// selector that falls back to DefaultTheme for unknown names.
func NewThemeSelector(extra ...*theme.Manifest) (theme.ThemeSelector, error) {
	builtin, err := theme.LoadFile(embeddedThemes, builtinTheme)
	if err != nil {
		return nil, fmt.Errorf("html renderer: built-in theme: %w", err)
	}

	registry := theme.NewRegistry()
	for _, manifest := range append([]*theme.Manifest{builtin}, extra...) {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("html renderer: register theme %q: %w", manifest.Name, err)
		}
	}
	return theme.Selector{
		Registry:       registry,
		DefaultTheme:   DefaultTheme,
		DefaultVariant: DefaultVariant,
	}, nil
}

// LoadThemeManifest reads a go-theme manifest (JSON or YAML) from disk.
func LoadThemeManifest(path string) (*theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return manifest, nil
}

// ResolveTheme selects name/variant and layers overrides on top of the
// manifest tokens. Manifest tokens and overrides without a leading "--" are
// exposed as --partner-<token>.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, overrides map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("html renderer: theme selector is nil")
	}
	for key, value := range overrides {
		if !safeCSSVar(key, value) {
			return nil, fmt.Errorf("html renderer: theme token %q has characters not allowed in CSS values", key)
		}
	}

	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	cfg := selection.RendererTheme(nil)
	if selection.Manifest != nil {
		cfg.Theme = selection.Manifest.Name
	}
	cfg.CSSVars = selection.CSSVariables(cssVarPrefix)
	for key, value := range overrides {
		cfg.Tokens[key] = value
		cfg.CSSVars[cssVarName(key)] = value
	}
	return &cfg, nil
}

func cssVarName(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	return cssVarPrefix + key
}

func safeCSSVar(key, value string) bool {
	return strings.TrimSpace(key) != "" &&
		!strings.ContainsAny(key, unsafeCSSChars+" :") &&
		!strings.ContainsAny(value, unsafeCSSChars)
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	return rendererTheme{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

// cssVarsStyle renders vars as a :root block. Entries that could close the
// declaration or the style element are skipped.
func cssVarsStyle(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key, value := range vars {
		if safeCSSVar(key, value) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
