//go:build !screen

package display

import "keylock/keypad"

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return false
}

// Framebuffer is a stub when screen support is not compiled in.
type Framebuffer struct{}

// NewFramebuffer returns an error when screen support is not compiled in.
func NewFramebuffer(cfg Config) (*Framebuffer, error) {
	return nil, ErrScreenNotCompiled
}

func (f *Framebuffer) Show(msg string) error                                    { return nil }
func (f *Framebuffer) RenderKeypad(layout keypad.Layout, c keypad.Cursor) error { return nil }
func (f *Framebuffer) Release() error                                           { return nil }
