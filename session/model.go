package session

import "time"

// UserProfile is the authenticated user's profile as returned by the backend.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenPair carries the access/refresh credential pair issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// State is the session's persisted payload. Absent fields are the zero value:
// empty token strings and a nil user.
//
// Invariant: User is only assigned while AccessToken is known valid at the moment
// of assignment. The store does not keep User consistent with AccessToken
// afterward; both are independently overwritten.
type State struct {
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *UserProfile `json:"user,omitempty"`
}

// LoggedIn reports whether any identity has ever been established: true when at
// least one token is present.
func (s State) LoggedIn() bool {
	return s.AccessToken != "" || s.RefreshToken != ""
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// Record is the durable on-disk (or Redis) shape of the session. The state
// envelope is the wire contract; renaming the key breaks existing records.
type Record struct {
	State State `json:"state"`
}
