package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"mutfago/models"
)

// TestKitchenMembershipFlow walks the whole invite journey: create a kitchen,
// submit its code, approve, and read the member list.
func TestKitchenMembershipFlow(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)
	guest := createTestUser(t, db, "guest@example.com", false)

	// Owner creates the kitchen.
	rec := doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen", map[string]string{"name": "Aksoy Mutfağı"}, owner))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create kitchen status = %d body=%s", rec.Code, rec.Body.String())
	}
	var created kitchenResponse
	dataAs(t, decodeEnvelope(t, rec), &created)
	if len(created.InviteCode) != 6 || !created.IsOwner {
		t.Fatalf("unexpected kitchen response: %+v", created)
	}

	// Guest submits the invite code.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/join-request", map[string]string{"invite_code": created.InviteCode}, guest))
	if rec.Code != http.StatusCreated {
		t.Fatalf("join request status = %d body=%s", rec.Code, rec.Body.String())
	}
	var request joinRequestResponse
	dataAs(t, decodeEnvelope(t, rec), &request)
	if request.Status != models.JoinRequestPending {
		t.Fatalf("request status %q, want PENDING", request.Status)
	}

	// Owner sees it pending.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodGet, fmt.Sprintf("/api/kitchen/pending-requests?kitchenId=%d", created.ID), nil, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("pending requests status = %d body=%s", rec.Code, rec.Body.String())
	}
	var pending []joinRequestResponse
	dataAs(t, decodeEnvelope(t, rec), &pending)
	if len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("pending = %+v", pending)
	}

	// Guest cannot approve.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/approve-request", map[string]uint{"request_id": request.ID}, guest))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("guest approve status = %d", rec.Code)
	}

	// Owner approves.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/approve-request", map[string]uint{"request_id": request.ID}, owner))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d body=%s", rec.Code, rec.Body.String())
	}

	// Approving again reports the terminal state.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/approve-request", map[string]uint{"request_id": request.ID}, owner))
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-approve status = %d, want 409", rec.Code)
	}

	// Member list now carries both users.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodGet, fmt.Sprintf("/api/kitchen/members?kitchenId=%d", created.ID), nil, guest))
	if rec.Code != http.StatusOK {
		t.Fatalf("members status = %d body=%s", rec.Code, rec.Body.String())
	}
	var members []memberResponse
	dataAs(t, decodeEnvelope(t, rec), &members)
	if len(members) != 2 {
		t.Fatalf("members = %+v", members)
	}
	roles := map[uint]string{}
	for _, member := range members {
		roles[member.UserID] = member.Role
	}
	if roles[owner.ID] != models.RoleOwner || roles[guest.ID] != models.RoleMember {
		t.Fatalf("roles = %+v", roles)
	}

	// The new member can touch the kitchen's pantry.
	rec = doAPI(t, PantryResource, apiRequest(t, http.MethodPost, "/api/pantry", map[string]any{
		"kitchen_id": created.ID,
		"name":       "Domates",
		"category":   "Sebzeler",
		"quantity":   2,
	}, guest))
	if rec.Code != http.StatusCreated {
		t.Fatalf("member pantry add status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestKitchenRequiresBearer(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	rec := doAPI(t, KitchenResource, apiRequest(t, http.MethodGet, "/api/kitchen", nil, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRemoveMemberEndpoint(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)
	t.Cleanup(withTestAuthSecret(t))

	owner := createTestUser(t, db, "owner@example.com", false)
	guest := createTestUser(t, db, "guest@example.com", false)

	rec := doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen", map[string]string{"name": "Mutfak"}, owner))
	var created kitchenResponse
	dataAs(t, decodeEnvelope(t, rec), &created)

	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/join-request", map[string]string{"invite_code": created.InviteCode}, guest))
	var request joinRequestResponse
	dataAs(t, decodeEnvelope(t, rec), &request)
	doAPI(t, KitchenResource, apiRequest(t, http.MethodPost, "/api/kitchen/approve-request", map[string]uint{"request_id": request.ID}, owner))

	// Owner removing themselves is refused.
	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodDelete, fmt.Sprintf("/api/kitchen/members/%d?kitchenId=%d", owner.ID, created.ID), nil, owner))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self removal status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doAPI(t, KitchenResource, apiRequest(t, http.MethodDelete, fmt.Sprintf("/api/kitchen/members/%d?kitchenId=%d", guest.ID, created.ID), nil, owner))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove member status = %d body=%s", rec.Code, rec.Body.String())
	}
}
