package adminclient

import "sync"

const LoginPath = "/login"

// Navigator abstracts the panel's route handling so the session can force a
// redirect without knowing what renders the screens.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// Session holds the admin token and owns the single teardown entry point.
type Session struct {
	mu        sync.Mutex
	token     string
	navigator Navigator
}

func NewSession(token string, navigator Navigator) *Session {
	return &Session{token: token, navigator: navigator}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Teardown clears the stored token and forces navigation to the login screen.
// It is safe to call from any route; navigating is skipped when the login
// screen is already showing.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.token = ""
	navigator := s.navigator
	s.mu.Unlock()

	if navigator != nil && navigator.CurrentPath() != LoginPath {
		navigator.Navigate(LoginPath)
	}
}
