// Package render defines the renderer boundary and a terminal preview
// implementation. The core emits one RenderInstruction per slot per tick;
// a Renderer reconciles its visual elements against that list.
package render

import "github.com/vedantwpatil/click-pop/internal/overlay"

// Renderer applies one tick's worth of render instructions to some
// output surface. Implementations key their elements by slot index,
// which is stable for the life of the pool.
type Renderer interface {
	Apply(instructions []overlay.RenderInstruction) error
	Close() error
}
