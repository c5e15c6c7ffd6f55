package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/santanu-atta03/Ovara/internal/service"
)

type addContactRequest struct {
	UserID   int64  `json:"user_id" validate:"required"`
	Nickname string `json:"nickname"`
}

type renameContactRequest struct {
	Nickname string `json:"nickname" validate:"required"`
}

// pathID parses the named URL parameter as an int64, returning ok=false when
// it is missing or malformed.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func handleListContacts(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := contactSvc.List(r.Context(), CurrentUser(r).ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, views)
	}
}

func handleAddContact(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addContactRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		view, err := contactSvc.Add(r.Context(), CurrentUser(r).ID, req.UserID, req.Nickname)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusCreated, view)
	}
}

func handleRenameContact(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, ok := pathID(r, "contactID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		var req renameContactRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		view, err := contactSvc.Rename(r.Context(), CurrentUser(r).ID, contactID, req.Nickname)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, view)
	}
}

func handleRemoveContact(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, ok := pathID(r, "contactID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		if err := contactSvc.Remove(r.Context(), CurrentUser(r).ID, contactID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "contact removed")
	}
}

func handleToggleBlock(contactSvc *service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, ok := pathID(r, "contactID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		view, err := contactSvc.ToggleBlock(r.Context(), CurrentUser(r).ID, contactID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, view)
	}
}
