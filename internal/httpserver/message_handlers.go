package httpserver

import (
	"net/http"
	"strconv"

	"github.com/santanu-atta03/Ovara/internal/service"
)

type createMessageRequest struct {
	Content   string  `json:"content"`
	Kind      string  `json:"kind"`
	MediaURL  *string `json:"media_url"`
	MediaType *string `json:"media_type"`
	ReplyToID *int64  `json:"reply_to_id"`
}

type reactRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}

type deleteMessageRequest struct {
	DeleteType string `json:"delete_type" validate:"required,oneof=for_me for_everyone"`
}

func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func handleListMessages(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, ok := pathID(r, "conversationID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid conversation id")
			return
		}
		limit := queryInt(r, "limit", 0)
		offset := queryInt(r, "offset", 0)

		msgs, err := msgSvc.List(r.Context(), CurrentUser(r).ID, conversationID, limit, offset)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, msgs)
	}
}

func handleCreateMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, ok := pathID(r, "conversationID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid conversation id")
			return
		}
		var req createMessageRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := msgSvc.Append(r.Context(), CurrentUser(r).ID, service.AppendInput{
			ConversationID: conversationID,
			Content:        req.Content,
			Kind:           req.Kind,
			MediaURL:       req.MediaURL,
			MediaType:      req.MediaType,
			ReplyToID:      req.ReplyToID,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusCreated, msg)
	}
}

func handleMarkDelivered(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, ok := pathID(r, "messageID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid message id")
			return
		}
		if err := msgSvc.MarkDelivered(r.Context(), messageID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "delivered")
	}
}

func handleMarkRead(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, ok := pathID(r, "messageID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid message id")
			return
		}
		if err := msgSvc.MarkRead(r.Context(), CurrentUser(r).ID, messageID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "read")
	}
}

func handleReact(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, ok := pathID(r, "messageID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid message id")
			return
		}
		var req reactRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := msgSvc.React(r.Context(), CurrentUser(r).ID, messageID, req.Emoji)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, msg)
	}
}

func handleDeleteMessage(msgSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, ok := pathID(r, "messageID")
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid message id")
			return
		}
		var req deleteMessageRequest
		if err := decodeAndValidate(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		user := CurrentUser(r)
		var err error
		if req.DeleteType == "for_everyone" {
			err = msgSvc.DeleteForEveryone(r.Context(), user.ID, messageID)
		} else {
			err = msgSvc.DeleteForMe(r.Context(), user.ID, messageID)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "message deleted")
	}
}
