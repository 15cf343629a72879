package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"

	"bundasehat/internal/gemini"
	"bundasehat/internal/storage"
	"bundasehat/internal/tracker"
)

type Config struct {
	Host         string
	Port         int
	DBPath       string
	GeminiAPIKey string
}

// TrackerServer routes tool calls to the tracker state and the AI
// gateway. It is the only component holding navigation between the
// stores: every user action arrives here as a named tool.
type TrackerServer struct {
	server     *server.Server
	httpServer *http.Server
	storage    *storage.Store
	tracker    *tracker.Tracker
	ai         *gemini.Client
	config     *Config
}

func NewTrackerServer(cfg *Config) (*TrackerServer, error) {
	stor, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	trackerServer := &TrackerServer{
		storage: stor,
		tracker: tracker.New(stor),
		ai:      gemini.NewClient(cfg.GeminiAPIKey),
		config:  cfg,
	}

	// Create MCP server (without transport, we handle HTTP manually)
	mcpServer, err := server.NewServer(
		nil,
		server.WithServerInfo(protocol.Implementation{
			Name:    "bundasehat",
			Version: "1.0.0",
		}),
	)
	if err != nil {
		stor.Close()
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	trackerServer.server = mcpServer

	if err := trackerServer.registerTools(); err != nil {
		stor.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", trackerServer.handleHTTP)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	trackerServer.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	return trackerServer, nil
}

func (s *TrackerServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	// Top-level boundary: a panicking handler replaces the whole view
	// with a static recovery payload instead of taking the process down.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Recovered from panic in tool handler: %v", rec)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":    "internal failure",
				"recovery": "reload",
			})
		}
	}()

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.dispatch(r.Context(), &request)
	if err == errUnknownTool {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

var errUnknownTool = fmt.Errorf("unknown tool")

// dispatch routes a tool call to its handler.
func (s *TrackerServer) dispatch(ctx context.Context, request *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	switch request.Name {
	case "get_daily_log":
		return s.handleGetDailyLog(ctx, request)
	case "set_water":
		return s.handleSetWater(ctx, request)
	case "toggle_supplement":
		return s.handleToggleSupplement(ctx, request)
	case "log_meal":
		return s.handleLogMeal(ctx, request)
	case "log_supplements_text":
		return s.handleLogSupplementsText(ctx, request)
	case "get_history":
		return s.handleGetHistory(ctx, request)
	case "generate_menu":
		return s.handleGenerateMenu(ctx, request)
	case "chat":
		return s.handleChat(ctx, request)
	case "get_profile":
		return s.handleGetProfile(ctx, request)
	case "update_profile":
		return s.handleUpdateProfile(ctx, request)
	case "gestational_stats":
		return s.handleGestationalStats(ctx, request)
	default:
		return nil, errUnknownTool
	}
}

func (s *TrackerServer) Start(ctx context.Context) error {
	log.Printf("Starting tracker server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *TrackerServer) Stop() error {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

func (s *TrackerServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
