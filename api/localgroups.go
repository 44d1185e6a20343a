package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openxroad/adminapi/usecase"
)

func (h *Handler) createLocalGroup(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var req localGroupCreateRequest
	if err := decodeBody(r, &req); err != nil || req.Code == "" {
		h.badRequest(w, "code is required")
		return
	}

	tx := h.store.Txn(true)
	client, err := usecase.Clients(tx).GetByID(clientID)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	group, err := usecase.LocalGroups(tx, h.dir).Create(client.UUID, req.Code, req.Description)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("local group created",
		"client", clientID.ShortString(), "group", req.Code)
	h.writeJSON(w, http.StatusCreated, toLocalGroupView(group))
}

func (h *Handler) listLocalGroups(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	tx := h.store.Txn(false)
	defer tx.Abort()

	client, err := usecase.Clients(tx).GetByID(clientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	groups, err := usecase.LocalGroups(tx, h.dir).ListByClient(client.UUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]LocalGroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, toLocalGroupView(g))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getLocalGroup(w http.ResponseWriter, r *http.Request) {
	tx := h.store.Txn(false)
	defer tx.Abort()

	group, err := usecase.LocalGroups(tx, h.dir).GetByUUID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLocalGroupView(group))
}

func (h *Handler) patchLocalGroup(w http.ResponseWriter, r *http.Request) {
	var req localGroupPatchRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	tx := h.store.Txn(true)
	group, err := usecase.LocalGroups(tx, h.dir).UpdateDescription(chi.URLParam(r, "id"), req.Description)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLocalGroupView(group))
}

func (h *Handler) deleteLocalGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	tx := h.store.Txn(true)
	if err := usecase.LocalGroups(tx, h.dir).Delete(groupID); err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("local group deleted", "group", groupID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addLocalGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req localGroupMembersRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	members, err := parseSubjectIDs(req.MemberIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	tx := h.store.Txn(true)
	group, err := usecase.LocalGroups(tx, h.dir).AddMembers(chi.URLParam(r, "id"), members)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLocalGroupView(group))
}

func (h *Handler) removeLocalGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req localGroupMembersRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	members, err := parseSubjectIDs(req.MemberIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	tx := h.store.Txn(true)
	if _, err := usecase.LocalGroups(tx, h.dir).RemoveMembers(chi.URLParam(r, "id"), members); err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
