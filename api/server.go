package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/gridroute/gridroute/nav/service"
	"github.com/gridroute/gridroute/nav/tilemap"
	"github.com/gridroute/gridroute/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.NavService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(navService service.NavService, hub *websocket.Hub) *Server {
	s := &Server{
		service: navService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Maps
	api.HandleFunc("/maps", s.handleListMaps).Methods("GET")
	api.HandleFunc("/maps", s.handleSaveMap).Methods("POST")
	api.HandleFunc("/maps/{name}", s.handleGetMap).Methods("GET")

	// Routing
	api.HandleFunc("/maps/{name}/route", s.handleFindRoute).Methods("POST")
	api.HandleFunc("/maps/{name}/tile", s.handleDescribeTile).Methods("GET")
	api.HandleFunc("/maps/{name}/history", s.handleRouteHistory).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Map handlers

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.service.ListMaps(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(maps),
		"maps":  maps,
	})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	config, err := s.service.GetMap(r.Context(), name)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleSaveMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MapID  string             `json:"map_id"`
		Config *tilemap.MapConfig `json:"config"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MapID == "" || req.Config == nil {
		respondError(w, http.StatusBadRequest, "map_id and config are required")
		return
	}

	if err := s.service.SaveMap(r.Context(), req.MapID, req.Config); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"map_id": req.MapID})
}

// Routing handlers

func (s *Server) handleFindRoute(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req service.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.service.FindRoute(r.Context(), name, req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Observers subscribed to the map get the same outcome pushed to them.
	if s.hub != nil {
		s.hub.BroadcastRoute(result)
		if result.Found && r.URL.Query().Get("playback") == "true" {
			s.hub.PlayRoute(result)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDescribeTile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	query := r.URL.Query()
	x, errX := strconv.Atoi(query.Get("x"))
	y, errY := strconv.Atoi(query.Get("y"))
	if errX != nil || errY != nil {
		respondError(w, http.StatusBadRequest, "x and y query parameters are required integers")
		return
	}

	info, err := s.service.DescribeTile(r.Context(), name, x, y)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleRouteHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	query := r.URL.Query()
	opts := service.HistoryOptions{Order: query.Get("order")}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		opts.Limit = limit
	}

	history, err := s.service.RouteHistory(r.Context(), name, opts)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket hub is not running")
		return
	}

	mapName := r.URL.Query().Get("map")
	if mapName == "" {
		respondError(w, http.StatusBadRequest, "map query parameter is required")
		return
	}

	s.hub.ServeWS(w, r, mapName)
}
