package httpserver

import (
	"net/http"

	"github.com/santanu-atta03/Ovara/internal/service"
)

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Theme    *string `json:"theme"`
	DarkMode *bool   `json:"dark_mode"`
}

func handleGetProfile(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := userSvc.Get(r.Context(), CurrentUser(r).ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, user)
	}
}

func handleUpdateProfile(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := userSvc.UpdateProfile(r.Context(), CurrentUser(r).ID, service.ProfileUpdate{
			Name:     req.Name,
			Phone:    req.Phone,
			Avatar:   req.Avatar,
			Bio:      req.Bio,
			Theme:    req.Theme,
			DarkMode: req.DarkMode,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, user)
	}
}

func handleSearchUsers(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := userSvc.Search(r.Context(), CurrentUser(r).ID, r.URL.Query().Get("q"))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, profiles)
	}
}

func handleHeartbeat(userSvc *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := userSvc.Heartbeat(r.Context(), CurrentUser(r).ID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "ok")
	}
}
