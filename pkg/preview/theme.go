package preview

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Template and asset keys a theme manifest may override.
const (
	TemplatePage     = "preview.page"
	TemplateField    = "preview.field"
	AssetStylesheet  = "preview.stylesheet"
	defaultThemeName = "default"
)

// ErrThemeNotFound is returned by StaticSelector for unknown themes or
// variants.
var ErrThemeNotFound = errors.New("preview: theme not found")

// Theme is the resolved theme context handed to templates.
type Theme struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens"`
	CSSVars      map[string]string `json:"css_vars"`
	CSSVarsStyle string            `json:"css_vars_style"`
	Stylesheet   string            `json:"stylesheet"`
	Templates    map[string]string `json:"-"`
}

// DefaultManifest is the theme used when no selector is configured.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    defaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"fb-accent":     "#0d6efd",
			"fb-background": "#ffffff",
			"fb-foreground": "#212529",
			"fb-radius":     "0.375rem",
		},
		Assets: theme.Assets{
			Prefix: AssetsPrefix,
			Files:  map[string]string{AssetStylesheet: "formbuilder.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"fb-background": "#212529",
					"fb-foreground": "#f8f9fa",
				},
			},
		},
	}
}

// StaticSelector selects among a fixed set of manifests. The first manifest
// is the default.
type StaticSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector validates manifests through a go-theme registry and
// returns a selector over them.
func NewStaticSelector(manifests ...*theme.Manifest) (*StaticSelector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	s := &StaticSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("preview: register theme %q: %w", manifest.Name, err)
		}
		if s.fallback == "" {
			s.fallback = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s, nil
}

// Select resolves a theme and variant. Empty names pick the default theme and
// its base variant.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: variant %q of %q", ErrThemeNotFound, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// resolveTheme flattens a selection: variant tokens, templates and assets
// override the manifest's.
func resolveTheme(selection *theme.Selection) Theme {
	resolved := Theme{
		Tokens:    map[string]string{},
		CSSVars:   map[string]string{},
		Templates: map[string]string{},
	}
	if selection == nil {
		return resolved
	}
	resolved.Name = selection.Theme
	resolved.Variant = selection.Variant

	manifest := selection.Manifest
	if manifest == nil {
		return resolved
	}
	files := map[string]string{}
	merge(resolved.Tokens, manifest.Tokens)
	merge(resolved.Templates, manifest.Templates)
	merge(files, manifest.Assets.Files)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		merge(resolved.Tokens, variant.Tokens)
		merge(resolved.Templates, variant.Templates)
		merge(files, variant.Assets.Files)
	}

	for key, value := range resolved.Tokens {
		resolved.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}
	resolved.CSSVarsStyle = cssVarsStyle(resolved.CSSVars)
	if file, ok := files[AssetStylesheet]; ok && file != "" {
		resolved.Stylesheet = assetURL(manifest.Assets.Prefix, file)
	}
	return resolved
}

func assetURL(prefix, file string) string {
	if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
		return file
	}
	return path.Join(prefix, file)
}

func merge(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
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
