package ui

import "testing"

func TestFrameClamp(t *testing.T) {
	bounds := Frame{X: 1, Y: 1, Width: 80, Height: 24}

	tests := []struct {
		name     string
		input    Frame
		expected Frame
	}{
		{"inside", Frame{10, 5, 40, 10}, Frame{10, 5, 40, 10}},
		{"past right edge", Frame{70, 5, 40, 10}, Frame{41, 5, 40, 10}},
		{"past top left", Frame{-5, -3, 40, 10}, Frame{1, 1, 40, 10}},
		{"too large", Frame{0, 0, 200, 100}, Frame{1, 1, 80, 24}},
		{"too small", Frame{10, 5, 2, 1}, Frame{10, 5, MinConsoleWidth, MinConsoleHeight}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.input.Clamp(bounds); got != test.expected {
				t.Errorf("expected %+v but got %+v", test.expected, got)
			}
		})
	}
}

func TestFrameMove(t *testing.T) {
	bounds := Frame{0, 0, 80, 24}
	f := Frame{10, 5, 40, 10}

	if got := f.Move(5, 2, bounds); got != (Frame{15, 7, 40, 10}) {
		t.Errorf("Unexpected move result %+v", got)
	}
	if got := f.Move(100, 100, bounds); got != (Frame{40, 14, 40, 10}) {
		t.Errorf("Expected move to stop at the bottom-right edge, got %+v", got)
	}
	if got := f.Move(-100, -100, bounds); got != (Frame{0, 0, 40, 10}) {
		t.Errorf("Expected move to stop at the top-left edge, got %+v", got)
	}
}

func TestFrameResize(t *testing.T) {
	bounds := Frame{0, 0, 80, 24}
	f := Frame{10, 5, 40, 10}

	if got := f.Resize(10, 4, bounds); got != (Frame{10, 5, 50, 14}) {
		t.Errorf("Unexpected resize result %+v", got)
	}
	if got := f.Resize(-100, -100, bounds); got != (Frame{10, 5, MinConsoleWidth, MinConsoleHeight}) {
		t.Errorf("Expected resize to stop at the minimum size, got %+v", got)
	}
	if got := f.Resize(100, 100, bounds); got != (Frame{10, 5, 70, 19}) {
		t.Errorf("Expected resize to stop at the screen edge, got %+v", got)
	}
}

func TestDefaultConsoleFrame(t *testing.T) {
	got := DefaultConsoleFrame(Frame{0, 1, 100, 40})
	if got != (Frame{0, 2, 100, 12}) {
		t.Errorf("Unexpected default frame %+v", got)
	}
	if !got.Contains(0, 2) || got.Contains(100, 2) || got.Empty() {
		t.Errorf("Contains/Empty disagree with frame %+v", got)
	}
}
