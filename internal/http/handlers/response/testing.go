package response

import (
	"blog/internal/core/domain/logging"
	"blog/internal/http/views"
)

// NewTestRenderer renders the real templates and discards logs.
func NewTestRenderer() *Renderer {
	v, err := views.New()
	if err != nil {
		panic(err)
	}
	return NewRenderer(logging.NewFakeLogger(), v, "")
}
