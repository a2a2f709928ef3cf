// Package models defines the client-side data shapes shared by the session
// store, its adapters, and the API layer.
package models

// Credentials carry the sign-in form values.
type Credentials struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// AuthState is the canonical session state. The session store is its single
// writer; everyone else receives value copies via subscription pushes.
//
// Invariant: IsAuthenticated == (User != nil && Token != "") after every
// operation settles.
type AuthState struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Clone returns a copy whose User points at its own memory, so a subscriber
// can never mutate the store's profile through the snapshot it was handed.
func (s AuthState) Clone() AuthState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
