// Package api exposes the access-right engine over HTTP. Handlers open one
// store transaction per request: mutations run in a write transaction that is
// committed on success and aborted on any error, reads use a read transaction.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/hashicorp/go-hclog"

	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/usecase"
)

type Handler struct {
	store  *memstore.MemoryStore
	dir    *globalconf.Store
	logger log.Logger
}

func NewHandler(store *memstore.MemoryStore, dir *globalconf.Store, logger log.Logger) *Handler {
	return &Handler{
		store:  store,
		dir:    dir,
		logger: logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("response encoding failed", "error", err)
	}
}

func decodeBody(r *http.Request, into any) error {
	return json.NewDecoder(r.Body).Decode(into)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- endpoint access rights ---

func (h *Handler) addEndpointAccessRights(w http.ResponseWriter, r *http.Request) {
	var req accessRightsRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	subjects, err := parseAccessRightSubjects(req.SubjectIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	endpointID := chi.URLParam(r, "id")

	tx := h.store.Txn(true)
	acl, err := usecase.AccessRights(tx, h.dir).AddEndpointAccessRights(endpointID, subjects, req.LocalGroupIDs)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("access rights granted", "endpoint", endpointID,
		"subjects", len(subjects)+len(req.LocalGroupIDs))
	h.writeJSON(w, http.StatusOK, toServiceClientViews(acl))
}

func (h *Handler) deleteEndpointAccessRights(w http.ResponseWriter, r *http.Request) {
	var req accessRightsRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	subjects, err := parseAccessRightSubjects(req.SubjectIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	endpointID := chi.URLParam(r, "id")

	tx := h.store.Txn(true)
	if err := usecase.AccessRights(tx, h.dir).DeleteEndpointAccessRights(endpointID, subjects, req.LocalGroupIDs); err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("access rights revoked", "endpoint", endpointID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getEndpointAccessRights(w http.ResponseWriter, r *http.Request) {
	tx := h.store.Txn(false)
	defer tx.Abort()

	acl, err := usecase.AccessRights(tx, h.dir).GetEndpointAccessRights(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toServiceClientViews(acl))
}

// --- whole-service access rights ---

func (h *Handler) addServiceAccessRights(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var req accessRightsRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	subjects, err := parseAccessRightSubjects(req.SubjectIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	serviceCode := chi.URLParam(r, "code")

	tx := h.store.Txn(true)
	acl, err := usecase.AccessRights(tx, h.dir).AddServiceAccessRights(clientID, serviceCode, subjects, req.LocalGroupIDs)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("service access rights granted",
		"client", clientID.ShortString(), "service", serviceCode)
	h.writeJSON(w, http.StatusOK, toServiceClientViews(acl))
}

func (h *Handler) deleteServiceAccessRights(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var req accessRightsRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	subjects, err := parseAccessRightSubjects(req.SubjectIDs)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	serviceCode := chi.URLParam(r, "code")

	tx := h.store.Txn(true)
	if err := usecase.AccessRights(tx, h.dir).DeleteServiceAccessRights(clientID, serviceCode, subjects, req.LocalGroupIDs); err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("service access rights revoked",
		"client", clientID.ShortString(), "service", serviceCode)
	w.WriteHeader(http.StatusNoContent)
}

// --- candidate search ---

var searchableSubjectTypes = map[model.XRoadObjectType]struct{}{
	model.Subsystem:   {},
	model.GlobalGroup: {},
	model.LocalGroup:  {},
}

func (h *Handler) findServiceClientCandidates(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	query := r.URL.Query()
	filters := usecase.ServiceClientFilters{
		NameOrDescription: query.Get("q"),
		Instance:          query.Get("instance"),
		MemberClass:       query.Get("member_class"),
		MemberGroupCode:   query.Get("member_group_code"),
		SubsystemCode:     query.Get("subsystem_code"),
	}
	if raw := query.Get("subject_type"); raw != "" {
		subjectType := model.XRoadObjectType(strings.ToUpper(raw))
		if _, ok := searchableSubjectTypes[subjectType]; !ok {
			h.badRequest(w, "unsupported subject_type "+raw)
			return
		}
		filters.SubjectType = subjectType
	}

	tx := h.store.Txn(false)
	defer tx.Abort()

	candidates, err := usecase.AccessRights(tx, h.dir).FindServiceClientCandidates(clientID, filters)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toServiceClientViews(candidates))
}

// --- client and service provisioning ---

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientCreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	id, err := model.ParseXRoadID(req.ClientID)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	tx := h.store.Txn(true)
	client, err := usecase.Clients(tx).Create(id)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("client registered", "client", id.ShortString())
	h.writeJSON(w, http.StatusCreated, toClientView(client))
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	tx := h.store.Txn(false)
	defer tx.Abort()

	clients, err := usecase.Clients(tx).List()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, toClientView(c))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var req serviceCreateRequest
	if err := decodeBody(r, &req); err != nil || req.ServiceCode == "" {
		h.badRequest(w, "service_code is required")
		return
	}

	tx := h.store.Txn(true)
	client, err := usecase.Clients(tx).GetByID(clientID)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	endpoint, err := usecase.Endpoints(tx).CreateService(client, req.ServiceCode)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("service registered",
		"client", clientID.ShortString(), "service", req.ServiceCode)
	h.writeJSON(w, http.StatusCreated, toEndpointView(endpoint))
}

func (h *Handler) createEndpoint(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientPathID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var req endpointCreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}
	if req.ServiceCode == "" || req.Method == "" || req.Path == "" {
		h.badRequest(w, "service_code, method and path are required")
		return
	}

	tx := h.store.Txn(true)
	client, err := usecase.Clients(tx).GetByID(clientID)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	endpoint, err := usecase.Endpoints(tx).CreateEndpoint(client, req.ServiceCode, req.Method, req.Path)
	if err != nil {
		tx.Abort()
		h.writeError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toEndpointView(endpoint))
}

func (h *Handler) listEndpoints(w http.ResponseWriter, r *http.Request) {
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
	endpoints, err := usecase.Endpoints(tx).ListByClient(client.UUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]EndpointView, 0, len(endpoints))
	for _, e := range endpoints {
		views = append(views, toEndpointView(e))
	}
	h.writeJSON(w, http.StatusOK, views)
}
