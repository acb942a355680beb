// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "strings"

// User is a registered member of the service. Email is unique across
// all users; DisplayName falls back to Login when blank.
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email" validate:"required,email"`
	Login       string `json:"login" validate:"required,nowhitespace"`
	DisplayName string `json:"display_name"`
	Birthday    Date   `json:"birthday" validate:"pastdate"`
}

// ApplyDefaults substitutes Login for a blank DisplayName.
// Called on both create and update.
func (u *User) ApplyDefaults() {
	if strings.TrimSpace(u.DisplayName) == "" {
		u.DisplayName = u.Login
	}
}
