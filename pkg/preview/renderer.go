package preview

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/preview/engine"
)

// ContentType is the media type of rendered previews.
const ContentType = "text/html; charset=utf-8"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

var defaultTemplates = map[string]string{
	TemplatePage:  "page",
	TemplateField: "field",
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine overrides the template engine.
func WithEngine(e engine.Renderer) Option {
	return func(r *Renderer) {
		r.engine = e
	}
}

// WithTemplateDir layers templates from dir over the embedded ones, so themes
// can point their template overrides at files there.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = dir
	}
}

// WithThemeSelector sets the selector consulted for every render.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		r.selector = selector
	}
}

// WithTheme picks the theme and variant requested from the selector.
func WithTheme(name, variant string) Option {
	return func(r *Renderer) {
		r.themeName = name
		r.variant = variant
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithPalette includes a palette legend in the page. Nil hides it.
func WithPalette(registry *palette.Registry) Option {
	return func(r *Renderer) {
		r.palette = registry
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns field trees into HTML.
type Renderer struct {
	engine      engine.Renderer
	templateDir string
	selector    theme.ThemeSelector
	themeName   string
	variant     string
	title       string
	palette     *palette.Registry
	policy      *bluemonday.Policy
	logger      *zap.Logger
}

// New constructs a Renderer backed by the embedded templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		title:  "Form preview",
		policy: bluemonday.UGCPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		opts := []engine.Option{engine.WithFS(TemplatesFS())}
		if r.templateDir != "" {
			opts = append(opts, engine.WithBaseDir(r.templateDir))
		}
		e, err := engine.New(opts...)
		if err != nil {
			return nil, err
		}
		r.engine = e
	}
	if r.selector == nil {
		selector, err := NewStaticSelector()
		if err != nil {
			return nil, err
		}
		r.selector = selector
	}
	return r, nil
}

// TemplatesFS exposes the embedded page and field templates so callers can
// copy and extend them through WithTemplateDir.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// ContentType reports the media type produced by Render.
func (r *Renderer) ContentType() string {
	return ContentType
}

// Render produces a complete HTML page for fields.
func (r *Renderer) Render(ctx context.Context, fields []*model.Field) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selection, err := r.selector.Select(r.themeName, r.variant)
	if err != nil {
		return nil, fmt.Errorf("preview: select theme: %w", err)
	}
	resolved := resolveTheme(selection)
	templates := make(map[string]string, len(defaultTemplates))
	merge(templates, defaultTemplates)
	merge(templates, resolved.Templates)

	rendered, err := r.renderList(fields, templates[TemplateField])
	if err != nil {
		return nil, err
	}

	page, err := r.engine.RenderTemplate(templates[TemplatePage], map[string]any{
		"title":   r.title,
		"theme":   resolved,
		"fields":  rendered,
		"palette": r.paletteView(),
	})
	if err != nil {
		return nil, fmt.Errorf("preview: render page: %w", err)
	}
	r.logger.Debug("preview rendered",
		zap.String("theme", resolved.Name),
		zap.String("variant", resolved.Variant),
		zap.Int("fields", model.Count(fields)),
	)
	return []byte(page), nil
}

type fieldView struct {
	UID         string     `json:"uid"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Rich        string     `json:"rich"`
	Required    bool       `json:"required"`
	Placeholder string     `json:"placeholder"`
	InputType   string     `json:"input_type"`
	Options     []string   `json:"options"`
	Accept      string     `json:"accept"`
	MaxSize     string     `json:"max_size"`
	Photo       string     `json:"photo"`
	PhotoName   string     `json:"photo_name"`
	PhotoSize   string     `json:"photo_size"`
	Columns     []string   `json:"columns"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
}

type paletteEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// renderList renders every field, children first, so templates receive nested
// content as finished markup.
func (r *Renderer) renderList(fields []*model.Field, tpl string) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == nil {
			continue
		}
		html, err := r.renderField(field, tpl)
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

func (r *Renderer) renderField(field *model.Field, tpl string) (string, error) {
	view := fieldView{
		UID:         field.UID,
		Type:        string(field.Type),
		Name:        field.Name,
		Label:       field.Label,
		Required:    field.Required,
		Placeholder: field.Placeholder,
		InputType:   inputType(field.Type),
	}
	if field.Type.IsStatic() {
		view.Rich = r.policy.Sanitize(field.Label)
	}
	if field.Choice != nil {
		view.Options = field.Choice.Options
	}
	if field.Photo != nil {
		view.Accept = field.Photo.AcceptedTypes
		view.MaxSize = strconv.FormatFloat(field.Photo.MaxSize, 'f', -1, 64)
		view.Photo = field.Photo.UploadedPhoto
		view.PhotoName = field.Photo.PhotoName
		view.PhotoSize = field.Photo.PhotoSize
	}
	if field.Container != nil {
		for _, column := range field.Container.Columns {
			html, err := r.joined(column.Fields, tpl)
			if err != nil {
				return "", err
			}
			view.Columns = append(view.Columns, html)
		}
	}
	if field.Table != nil {
		view.Headers = field.Table.Headers
		for _, row := range field.Table.Rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				html, err := r.joined(cell.Fields, tpl)
				if err != nil {
					return "", err
				}
				cells = append(cells, html)
			}
			view.Rows = append(view.Rows, cells)
		}
	}

	html, err := r.engine.RenderTemplate(tpl, map[string]any{"field": view})
	if err != nil {
		return "", fmt.Errorf("preview: render field %s: %w", field.UID, err)
	}
	return html, nil
}

func (r *Renderer) joined(fields []*model.Field, tpl string) (string, error) {
	parts, err := r.renderList(fields, tpl)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, "\n"), nil
}

func (r *Renderer) paletteView() []paletteEntry {
	if r.palette == nil {
		return nil
	}
	descriptors := r.palette.List()
	out := make([]paletteEntry, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, paletteEntry{ID: d.ID, Label: d.Label, Icon: r.palette.IconMarkup(d.ID)})
	}
	return out
}

func inputType(kind model.FieldType) string {
	switch kind {
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypeNumber:
		return "number"
	default:
		return "text"
	}
}
