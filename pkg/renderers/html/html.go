// Package html renders the partnership form as a standalone HTML document
// using pongo2 templates themed through go-theme.
package html

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/render"
)

const templateName = "form.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS returns the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	dismissIcon string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// form.tpl and any template it includes.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithDismissIcon replaces the SVG drawn inside every chip's remove button.
// The markup is sanitised; anything outside a plain SVG subset is dropped.
func WithDismissIcon(markup string) Option {
	return func(cfg *config) {
		cfg.dismissIcon = markup
	}
}

// Renderer turns a render.Surface into an HTML document.
type Renderer struct {
	template    *pongo2.Template
	dismissIcon string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer, parsing its template up front.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		dismissIcon: defaultDismissIcon,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	set := pongo2.NewSet("partnerform", pongo2.NewFSLoader(cfg.templateFS))
	tmpl, err := set.FromFile(templateName)
	if err != nil {
		return nil, fmt.Errorf("html renderer: load template %q: %w", templateName, err)
	}

	icon := sanitizeIconMarkup(cfg.dismissIcon)
	if icon == "" {
		icon = sanitizeIconMarkup(defaultDismissIcon)
	}

	return &Renderer{
		template:    tmpl,
		dismissIcon: icon,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the document for surface.
func (r *Renderer) Render(_ context.Context, surface render.Surface, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.template == nil {
		return nil, fmt.Errorf("html renderer: template is nil")
	}

	data := pongo2.Context{
		"surface":         toSurfaceData(surface),
		"selector":        toSelectorData(surface.Industries),
		"theme":           buildThemeContext(options.Theme),
		"dismiss_icon":    r.dismissIcon,
		"selected_marker": render.SelectedMarker,
	}
	if options.Notice != nil {
		data["notice"] = noticeData{Kind: string(options.Notice.Kind), Message: options.Notice.Message}
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Template data uses plain strings so comparisons inside templates do not
// depend on named string types.

type fieldData struct {
	Name        string
	Label       string
	Placeholder string
	Kind        string
	Required    bool
	Value       string
	Errors      []string
}

type chipData struct {
	ID   string
	Name string
}

type optionData struct {
	ID       string
	Name     string
	Selected bool
}

type selectorData struct {
	RootID      string
	SurfaceID   string
	ListID      string
	Label       string
	Chips       []chipData
	Placeholder string
	Open        bool
	Options     []optionData
	Errors      []string
}

type surfaceData struct {
	Heading string
	Intro   string
	Contact []fieldData
	Details []fieldData
	Submit  render.SubmitView
	Errors  []string
}

type noticeData struct {
	Kind    string
	Message string
}

func toSurfaceData(surface render.Surface) surfaceData {
	return surfaceData{
		Heading: surface.Heading,
		Intro:   surface.Intro,
		Contact: toFieldData(surface.Contact),
		Details: toFieldData(surface.Details),
		Submit:  surface.Submit,
		Errors:  surface.Errors,
	}
}

func toFieldData(views []render.FieldView) []fieldData {
	out := make([]fieldData, 0, len(views))
	for _, view := range views {
		out = append(out, fieldData{
			Name:        string(view.Name),
			Label:       view.Label,
			Placeholder: view.Placeholder,
			Kind:        string(view.Kind),
			Required:    view.Required,
			Value:       view.Value,
			Errors:      view.Errors,
		})
	}
	return out
}

func toSelectorData(view render.SelectorView) selectorData {
	data := selectorData{
		RootID:      dropdown.RootID,
		SurfaceID:   dropdown.SurfaceID,
		ListID:      dropdown.ListID,
		Label:       view.Label,
		Placeholder: view.Placeholder,
		Open:        view.Open,
		Errors:      view.Errors,
	}
	for _, name := range view.Chips {
		data.Chips = append(data.Chips, chipData{ID: dropdown.ChipID(name), Name: name})
	}
	for _, opt := range view.Options {
		data.Options = append(data.Options, optionData{ID: dropdown.RowID(opt.Name), Name: opt.Name, Selected: opt.Selected})
	}
	return data
}
