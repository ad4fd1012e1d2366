package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/models"
)

// State is a snapshot of a Session.
type State struct {
	User      *models.UserInfo
	IsLoading bool
	Error     string
}

// LoggedIn reports whether the snapshot holds a user.
func (s State) LoggedIn() bool {
	return s.User != nil
}

// Session holds who is signed in and keeps the client's bearer token in step
// with it. It is safe for concurrent use.
type Session struct {
	client *Client

	mu      sync.RWMutex
	user    *models.UserInfo
	loading bool
	err     string
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{IsLoading: s.loading, Error: s.err}
	if s.user != nil {
		user := *s.user
		state.User = &user
	}
	return state
}

// CanEdit reports whether edit affordances should be shown.
func (s *Session) CanEdit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == models.RoleAdmin
}

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Session) finish(user *models.UserInfo, token string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.err = err.Error()
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.err = apiErr.Message
		}
		return
	}
	s.user = user
	s.client.SetToken(token)
}

// Login signs in and, on success, authenticates every later client call.
func (s *Session) Login(ctx context.Context, email, password string) (models.UserInfo, error) {
	s.begin()
	result, err := s.client.Login(ctx, email, password)
	s.finish(&result.User, result.Token, err)
	return result.User, err
}

func (s *Session) Register(ctx context.Context, email, password, name string) (models.UserInfo, error) {
	s.begin()
	result, err := s.client.Register(ctx, email, password, name)
	s.finish(&result.User, result.Token, err)
	return result.User, err
}

// Restore adopts a previously issued token if the server still accepts it.
func (s *Session) Restore(ctx context.Context, token string) (models.UserInfo, error) {
	s.begin()
	user, err := s.client.Verify(ctx, token)
	s.finish(&user, token, err)
	return user, err
}

// Logout forgets the user and the token. No request is made.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.err = ""
	s.client.SetToken("")
}
