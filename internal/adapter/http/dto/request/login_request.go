package request

import "strings"

// LoginRequest is the login form. userId is the RBM code.
type LoginRequest struct {
	UserID   string `form:"userId" json:"userId" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (r LoginRequest) Normalize() LoginRequest {
	r.UserID = strings.TrimSpace(r.UserID)
	return r
}
