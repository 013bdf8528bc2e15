package entities

// SessionState is the serialized browser-context state (cookies plus
// local storage) captured after a successful login. The automation
// treats it as an opaque blob: loaded whole when a session starts and
// replaced whole when a fresh login happens. A nil or empty state means
// no saved session exists.
type SessionState []byte

// Empty reports whether there is no usable saved state.
func (s SessionState) Empty() bool {
	return len(s) == 0
}
