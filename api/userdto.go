package api

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/threadcount/fulfillment/core/user"
)

type CreateUserRequestDto struct {
	user.CreateUserRequest
}

func (p *CreateUserRequestDto) Bind(_ *http.Request) error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if p.PlainTextPassword == "" {
		return errors.New("password is required")
	}
	if p.Role == "" {
		return errors.New("role is required")
	}

	return nil
}

type UserResponse struct {
	user.User
}

func NewUserResponse(usr user.User) *UserResponse {
	return &UserResponse{User: usr}
}

func (rd *UserResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
