// Command api serves the analytics views of a saved NDJSON record file
// over HTTP.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"vuadocau-analyzer/analytics"
	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/store"
)

// APIRequest represents the request body for the views endpoint
type APIRequest struct {
	TargetSize string `json:"target_size,omitempty"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool             `json:"success"`
	Subset  int              `json:"subset,omitempty"`
	Data    []analytics.View `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Server holds the API server state: the record set loaded at startup.
type Server struct {
	logger  *logrus.Logger
	records []types.ProductRecord
}

// NewServer creates a new API server over the given record file.
func NewServer(inputPath string) (*Server, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	}

	records, err := store.LoadNDJSON(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded %d records from %s", len(records), inputPath)

	return &Server{logger: logger, records: records}, nil
}

// handleViews computes the analytics views for a target size.
func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	target := strings.TrimSpace(req.TargetSize)
	if target == "" {
		target = "4m5"
	}

	s.logger.Infof("views requested for target size %s", target)

	subset := analytics.ValidSubset(s.records, target)
	response := APIResponse{
		Success: true,
		Subset:  len(subset),
		Data:    analytics.Views(subset),
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// handleReport renders the plain-text report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	target := strings.TrimSpace(r.URL.Query().Get("target_size"))
	if target == "" {
		target = "4m5"
	}

	subset := analytics.ValidSubset(s.records, target)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := analytics.WriteReport(w, analytics.Views(subset), analytics.DefaultSampleRows); err != nil {
		s.logger.Errorf("Failed to write report: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode error response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Start starts the API server
func (s *Server) Start(port string) error {
	http.HandleFunc("/views", s.handleViews)
	http.HandleFunc("/report", s.handleReport)
	http.HandleFunc("/health", s.handleHealth)

	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /views  - Analytics views for a target size")
	s.logger.Info("  GET  /report - Plain-text analytics report")
	s.logger.Info("  GET  /health - Health check")

	return http.ListenAndServe(":"+port, nil)
}

func main() {
	_ = godotenv.Load()

	inputFlag := flag.String("input", "products.ndjson", "NDJSON record file to serve")
	flag.Parse()

	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
	}

	server, err := NewServer(*inputFlag)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	log.Fatal(server.Start(serverPort))
}
