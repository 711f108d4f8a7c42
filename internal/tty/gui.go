package tty

import "github.com/alexisbeaulieu97/faces/internal/attr"

// FontBackend opens fonts for a graphical surface.
type FontBackend interface {
	Open(attrs *attr.Vector) (any, error)
	Close(font any)
}

// GUIBackend realizes faces for graphical surfaces by delegating to a font
// backend. Without one, faces carry no backend data.
type GUIBackend struct {
	Fonts FontBackend
}

// Realize implements facecache.Backend.
func (g *GUIBackend) Realize(attrs *attr.Vector) (any, error) {
	if g == nil || g.Fonts == nil {
		return nil, nil
	}
	return g.Fonts.Open(attrs)
}

// Release implements facecache.Backend.
func (g *GUIBackend) Release(data any) {
	if g == nil || g.Fonts == nil || data == nil {
		return
	}
	g.Fonts.Close(data)
}
