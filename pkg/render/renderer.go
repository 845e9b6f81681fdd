package render

import "context"

// Renderer turns a Surface into a byte representation (HTML, plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, surface Surface, options RenderOptions) ([]byte, error)
}
