//go:build !windows

package hostwin

// NoopWindow is a placeholder window controller for non-Windows builds.
type NoopWindow struct{}

// NewWindow returns a non-functional controller on non-Windows platforms.
func NewWindow(title, companionTitle string) (Window, error) {
	_ = title
	_ = companionTitle
	return &NoopWindow{}, ErrUnsupported
}

// MoveTo returns ErrUnsupported.
func (n *NoopWindow) MoveTo(x, y int) error {
	_ = x
	_ = y
	return ErrUnsupported
}

// SetClickThrough returns ErrUnsupported.
func (n *NoopWindow) SetClickThrough(enabled bool) error {
	_ = enabled
	return ErrUnsupported
}

// ToggleCompanion returns ErrUnsupported.
func (n *NoopWindow) ToggleCompanion() error {
	return ErrUnsupported
}
