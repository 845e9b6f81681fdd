package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-partnerform/pkg/render"
)

// TextRenderer prints the surface as plain text for line-oriented terminals.
type TextRenderer struct{}

var _ render.Renderer = TextRenderer{}

// Name identifies the renderer inside the registry.
func (TextRenderer) Name() string { return "text" }

// ContentType reports the serialization format used by Render.
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render lays the surface out top to bottom. Chips are bracketed, the open
// option list is indented under the selector, and errors follow the input
// they belong to.
func (TextRenderer) Render(_ context.Context, surface render.Surface, options render.RenderOptions) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintln(&b, surface.Heading)
	fmt.Fprintln(&b, surface.Intro)
	fmt.Fprintln(&b)

	if options.Notice != nil {
		fmt.Fprintf(&b, "[%s] %s\n\n", options.Notice.Kind, options.Notice.Message)
	}
	writeErrors(&b, "", surface.Errors)

	for _, field := range surface.Contact {
		writeField(&b, field)
	}

	selector := surface.Industries
	fmt.Fprintf(&b, "  %s *: ", selector.Label)
	if len(selector.Chips) == 0 {
		fmt.Fprintf(&b, "(%s)\n", selector.Placeholder)
	} else {
		for i, chip := range selector.Chips {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "[%s ×]", chip)
		}
		b.WriteByte('\n')
	}
	if selector.Open {
		for _, opt := range selector.Options {
			marker := " "
			if opt.Selected {
				marker = render.SelectedMarker
			}
			fmt.Fprintf(&b, "      %s %s\n", marker, opt.Name)
		}
	}
	writeErrors(&b, "    ", selector.Errors)

	for _, field := range surface.Details {
		writeField(&b, field)
	}

	fmt.Fprintln(&b)
	if surface.Submit.Disabled {
		fmt.Fprintf(&b, "( %s )\n", surface.Submit.Label)
	} else {
		fmt.Fprintf(&b, "[ %s ]\n", surface.Submit.Label)
	}
	return b.Bytes(), nil
}

func writeField(b *bytes.Buffer, field render.FieldView) {
	label := field.Label
	if field.Required {
		label += " *"
	}
	value := field.Value
	if value == "" {
		value = "(" + field.Placeholder + ")"
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
	writeErrors(b, "    ", field.Errors)
}

func writeErrors(b *bytes.Buffer, indent string, messages []string) {
	for _, message := range messages {
		fmt.Fprintf(b, "%s! %s\n", indent, message)
	}
}
