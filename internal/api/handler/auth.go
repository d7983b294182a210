package handler

import (
	"backoffice/pkg/serrors"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// loginRequest is the credential payload of /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Login authenticates email/password credentials and issues a signed bearer
// token.
func (h *Handler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeProblem(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid login payload"))

			return
		}
		if req.Email == "" || req.Password == "" {
			h.writeProblem(ctx, w, serrors.With(serrors.ErrBadRequest, "email and password are required"))

			return
		}

		token, user, err := h.deps.Auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			h.writeProblem(ctx, w, err)

			return
		}

		writeJSON(ctx, w, http.StatusOK, loginResponse{
			Token: token,
			User: loginUser{
				ID:       uuid.UUID(user.ID).String(),
				Email:    user.Email,
				FullName: user.FullName,
			},
		})
	}
}
