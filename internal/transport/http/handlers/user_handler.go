package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/tmarin7/messagely/internal/service"
	"github.com/tmarin7/messagely/internal/transport/http/middleware"
)

type UserHandler struct {
	userService    *service.UserService
	messageService *service.MessageService
}

func NewUserHandler(userService *service.UserService, messageService *service.MessageService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		messageService: messageService,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	user, err := h.userService.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR get user: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	actingUsername := middleware.GetUsername(r.Context())
	username := r.PathValue("username")

	messages, err := h.messageService.MessagesFrom(r.Context(), actingUsername, username)
	if err != nil {
		writeMailboxError(w, "list sent messages", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	actingUsername := middleware.GetUsername(r.Context())
	username := r.PathValue("username")

	messages, err := h.messageService.MessagesTo(r.Context(), actingUsername, username)
	if err != nil {
		writeMailboxError(w, "list received messages", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func writeMailboxError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotMailboxOwner):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "You can only list your own messages")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
