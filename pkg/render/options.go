package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-partnerform/pkg/partner"
)

// RenderOptions carry per-render data that is not part of the form state.
type RenderOptions struct {
	// Theme supplies tokens and CSS variables resolved through go-theme.
	Theme *theme.RendererConfig
	// Notice is the last notification, for renderers that show feedback
	// inline instead of in a modal.
	Notice *Notice
}

// Notice is a notification captured for inline display.
type Notice struct {
	Kind    partner.Kind
	Message string
}
