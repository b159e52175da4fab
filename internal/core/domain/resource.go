package domain

// Resource is the read-only snapshot of a remote object after a successful
// fetch or create. Info returns the projected public view; the remote system
// remains the source of truth.
type Resource interface {
	Name() string
	Info() map[string]any
}
