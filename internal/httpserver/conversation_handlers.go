package httpserver

import (
	"net/http"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/service"
)

type createConversationRequest struct {
	// Kind selects between "direct" and "group".
	Kind string `json:"kind" validate:"required,oneof=direct group"`
	// UserID is the other party of a direct conversation.
	UserID int64 `json:"user_id"`
	// ParticipantIDs and GroupName apply to groups.
	ParticipantIDs []int64 `json:"participant_ids"`
	GroupName      string  `json:"group_name"`
}

type updateGroupRequest struct {
	GroupName   *string `json:"group_name" validate:"omitempty,min=1"`
	GroupAvatar *string `json:"group_avatar"`
}

func handleListConversations(convSvc *service.ConversationService, summarySvc *service.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		convs, err := convSvc.ListForUser(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		summaries, err := summarySvc.ProjectAll(r.Context(), convs, user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, summaries)
	}
}

func handleCreateConversation(convSvc *service.ConversationService, summarySvc *service.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createConversationRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		user := CurrentUser(r)

		var (
			conv *domain.Conversation
			err  error
		)
		switch req.Kind {
		case "group":
			conv, err = convSvc.CreateGroup(r.Context(), user.ID, req.ParticipantIDs, req.GroupName)
		default:
			conv, err = convSvc.FindOrCreateDirect(r.Context(), user.ID, req.UserID)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}

		summary, err := summarySvc.Project(r.Context(), conv, user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusCreated, summary)
	}
}

func handleGetConversation(convSvc *service.ConversationService, summarySvc *service.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, ok := pathID(r, "conversationID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid conversation id")
			return
		}
		user := CurrentUser(r)

		conv, err := convSvc.Get(r.Context(), user.ID, conversationID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		summary, err := summarySvc.Project(r.Context(), conv, user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, summary)
	}
}

func handleUpdateGroupInfo(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, ok := pathID(r, "conversationID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid conversation id")
			return
		}
		var req updateGroupRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		conv, err := convSvc.UpdateGroupInfo(r.Context(), CurrentUser(r).ID, conversationID, req.GroupName, req.GroupAvatar)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, conv)
	}
}

func handleDeleteConversation(convSvc *service.ConversationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, ok := pathID(r, "conversationID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid conversation id")
			return
		}
		if err := convSvc.Delete(r.Context(), CurrentUser(r).ID, conversationID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "conversation deleted")
	}
}
