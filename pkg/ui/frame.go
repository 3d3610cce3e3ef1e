package ui

// Minimum size of the console overlay, border included.
const (
	MinConsoleWidth  = 30
	MinConsoleHeight = 6
)

// Frame is a rectangle in screen cells.
type Frame struct {
	X, Y, Width, Height int
}

// Empty reports whether the frame has no area.
func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Contains reports whether the cell at x, y lies inside the frame.
func (f Frame) Contains(x, y int) bool {
	return x >= f.X && x < f.X+f.Width && y >= f.Y && y < f.Y+f.Height
}

// DefaultConsoleFrame places the console across the full width just below the top edge.
func DefaultConsoleFrame(bounds Frame) Frame {
	f := Frame{
		X:      bounds.X,
		Y:      bounds.Y + 1,
		Width:  bounds.Width,
		Height: min(12, bounds.Height-1),
	}
	return f.Clamp(bounds)
}

// Move shifts the frame by dx, dy and keeps it inside bounds.
func (f Frame) Move(dx, dy int, bounds Frame) Frame {
	f.X += dx
	f.Y += dy
	return f.Clamp(bounds)
}

// Resize grows or shrinks the frame from its bottom-right corner.
func (f Frame) Resize(dw, dh int, bounds Frame) Frame {
	f.Width = max(f.Width+dw, MinConsoleWidth)
	f.Height = max(f.Height+dh, MinConsoleHeight)
	f.Width = min(f.Width, bounds.X+bounds.Width-f.X)
	f.Height = min(f.Height, bounds.Y+bounds.Height-f.Y)
	return f.Clamp(bounds)
}

// Clamp shrinks the frame to fit bounds and then moves it inside.
func (f Frame) Clamp(bounds Frame) Frame {
	f.Width = max(min(f.Width, bounds.Width), min(MinConsoleWidth, bounds.Width))
	f.Height = max(min(f.Height, bounds.Height), min(MinConsoleHeight, bounds.Height))

	f.X = max(min(f.X, bounds.X+bounds.Width-f.Width), bounds.X)
	f.Y = max(min(f.Y, bounds.Y+bounds.Height-f.Height), bounds.Y)
	return f
}
