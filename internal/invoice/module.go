package invoice

import "go.uber.org/fx"

// Module provides the PDF invoice renderer.
var Module = fx.Provide(func() Renderer { return NewPDFRenderer() })
