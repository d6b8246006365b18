package response

import "github.com/hubicito/hubicito-api/internal/domain"

type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}
