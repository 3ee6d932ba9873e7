package handlers

import (
	"net/http"
	"strings"

	"mutfago/internal/audit"
	"mutfago/internal/kitchen"
	applog "mutfago/internal/log"
	"mutfago/models"
)

type kitchenResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
	OwnerID    uint   `json:"owner_id"`
	Status     string `json:"status"`
	IsOwner    bool   `json:"is_owner"`
}

type memberResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type joinRequestResponse struct {
	ID          uint   `json:"id"`
	KitchenID   uint   `json:"kitchen_id"`
	KitchenName string `json:"kitchen_name,omitempty"`
	UserID      uint   `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	Status      string `json:"status"`
}

func projectKitchen(k models.Kitchen, userID uint) kitchenResponse {
	return kitchenResponse{
		ID:         k.ID,
		Name:       k.Name,
		InviteCode: k.InviteCode,
		OwnerID:    k.OwnerID,
		Status:     k.Status,
		IsOwner:    k.OwnerID == userID,
	}
}

// KitchenResource handles /api/kitchen and its sub-resources.
func KitchenResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "INTERNAL", "service unavailable")
		return
	}
	user, ok := currentAPIUser(r)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	segments := pathSegments(r, "/api/kitchen")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listKitchens(w, r, user.ID)
		case http.MethodPost:
			createKitchen(w, r, user.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch segments[0] {
	case "members":
		if len(segments) == 1 {
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			listMembers(w, r, user.ID)
			return
		}
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		memberID, ok := parseID(segments[1])
		if !ok {
			http.NotFound(w, r)
			return
		}
		removeMember(w, r, user.ID, memberID)
	case "join-request":
		switch {
		case len(segments) == 1 && r.Method == http.MethodPost:
			submitJoinRequest(w, r, user.ID)
		case len(segments) == 2 && r.Method == http.MethodDelete:
			requestID, ok := parseID(segments[1])
			if !ok {
				http.NotFound(w, r)
				return
			}
			if err := kitchen.CancelRequest(r.Context(), database, user.ID, requestID); err != nil {
				writeAppError(w, r, err)
				return
			}
			writeAPIData(w, http.StatusOK, map[string]string{"status": models.JoinRequestCancelled})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "my-join-requests":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		myJoinRequests(w, r, user.ID)
	case "pending-requests":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		pendingRequests(w, r, user.ID)
	case "approve-request":
		resolveJoinRequest(w, r, user.ID, true)
	case "reject-request":
		resolveJoinRequest(w, r, user.ID, false)
	default:
		http.NotFound(w, r)
	}
}

func listKitchens(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchens, err := kitchen.ForUser(r.Context(), database, userID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	responses := make([]kitchenResponse, 0, len(kitchens))
	for _, k := range kitchens {
		responses = append(responses, projectKitchen(k, userID))
	}
	writeAPIData(w, http.StatusOK, responses)
}

func createKitchen(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	created, err := kitchen.Create(r.Context(), database, userID, payload.Name)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "kitchen", "kitchen_created", &userID, map[string]any{"kitchen_id": created.ID, "name": created.Name})
	applog.Info(r.Context(), "kitchen created", "kitchen", created.ID, "owner", userID)
	writeAPIData(w, http.StatusCreated, projectKitchen(*created, userID))
}

func listMembers(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchenID, ok := kitchenIDFromRequest(w, r, userID, 0)
	if !ok {
		return
	}

	members, err := kitchen.Members(r.Context(), database, kitchenID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	responses := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response := memberResponse{UserID: member.UserID, Role: member.Role}
		if member.User != nil {
			response.Name = member.User.Name
			response.Email = member.User.Email
		}
		responses = append(responses, response)
	}
	writeAPIData(w, http.StatusOK, responses)
}

func removeMember(w http.ResponseWriter, r *http.Request, userID, memberUserID uint) {
	var kitchenID uint
	if raw := r.URL.Query().Get("kitchenId"); raw != "" {
		if id, ok := parseID(raw); ok {
			kitchenID = id
		}
	}
	if kitchenID == 0 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "kitchenId is required")
		return
	}

	if err := kitchen.RemoveMember(r.Context(), database, userID, kitchenID, memberUserID); err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "kitchen", "member_removed", &userID, map[string]any{"kitchen_id": kitchenID, "member_user_id": memberUserID})
	w.WriteHeader(http.StatusNoContent)
}

func submitJoinRequest(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload struct {
		InviteCode string `json:"invite_code"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "invalid request payload")
		return
	}

	request, err := kitchen.SubmitJoinRequest(r.Context(), database, userID, strings.TrimSpace(payload.InviteCode))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeAPIData(w, http.StatusCreated, joinRequestResponse{
		ID:        request.ID,
		KitchenID: request.KitchenID,
		UserID:    request.UserID,
		Status:    request.Status,
	})
}

func myJoinRequests(w http.ResponseWriter, r *http.Request, userID uint) {
	requests, err := kitchen.MyJoinRequests(r.Context(), database, userID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	responses := make([]joinRequestResponse, 0, len(requests))
	for _, request := range requests {
		response := joinRequestResponse{
			ID:        request.ID,
			KitchenID: request.KitchenID,
			UserID:    request.UserID,
			Status:    request.Status,
		}
		if request.Kitchen != nil {
			response.KitchenName = request.Kitchen.Name
		}
		responses = append(responses, response)
	}
	writeAPIData(w, http.StatusOK, responses)
}

func pendingRequests(w http.ResponseWriter, r *http.Request, userID uint) {
	kitchenID, ok := parseID(r.URL.Query().Get("kitchenId"))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "kitchenId is required")
		return
	}

	requests, err := kitchen.PendingRequests(r.Context(), database, kitchenID, userID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	responses := make([]joinRequestResponse, 0, len(requests))
	for _, request := range requests {
		response := joinRequestResponse{
			ID:        request.ID,
			KitchenID: request.KitchenID,
			UserID:    request.UserID,
			Status:    request.Status,
		}
		if request.User != nil {
			response.UserName = request.User.Name
		}
		responses = append(responses, response)
	}
	writeAPIData(w, http.StatusOK, responses)
}

func resolveJoinRequest(w http.ResponseWriter, r *http.Request, userID uint, approve bool) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		RequestID uint `json:"request_id"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.RequestID == 0 {
		writeAPIError(w, http.StatusBadRequest, "VALIDATION", "request_id is required")
		return
	}

	var err error
	var status string
	if approve {
		err = kitchen.ApproveRequest(r.Context(), database, userID, payload.RequestID)
		status = models.JoinRequestApproved
	} else {
		err = kitchen.RejectRequest(r.Context(), database, userID, payload.RequestID)
		status = models.JoinRequestRejected
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	audit.Record(r.Context(), database, "kitchen", "join_request_resolved", &userID, map[string]any{"request_id": payload.RequestID, "status": status})
	writeAPIData(w, http.StatusOK, map[string]any{"request_id": payload.RequestID, "status": status})
}
