package handler

import (
	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/policy"
)

// toUserResponse serializes a record for the given requester. This is the one
// place a record crosses the output boundary, so the field gate is applied
// here and nowhere else.
func toUserResponse(u *domain.User, identity *domain.Identity) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    policy.Reveal("password", u, identity),
		Roles:       roles,
		Enabled:     u.Enabled,
		Avatar:      u.Avatar,
		CreatedDate: policy.Reveal("createdDate", u, identity),
	}
}

func toUserListResponse(users []*domain.User, identity *domain.Identity) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u, identity)
	}
	return out
}
