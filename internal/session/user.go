// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

// User is the authenticated identity. JSON tags match the persisted
// record's wire format.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// clone returns a defensive copy so callers cannot mutate store state.
func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// UserPatch is a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

// apply shallow-merges the patch into a copy of the user.
func (p UserPatch) apply(u *User) *User {
	merged := u.clone()
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.Avatar != nil {
		merged.Avatar = *p.Avatar
	}
	return merged
}

// Record is the persisted subset of session state. It round-trips through
// the Storage collaborator as one JSON document under StorageKey.
type Record struct {
	IsAuthenticated  bool   `json:"isAuthenticated"`
	User             *User  `json:"user"`
	Token            string `json:"token"`
	BiometricEnabled bool   `json:"biometricEnabled"`
}
