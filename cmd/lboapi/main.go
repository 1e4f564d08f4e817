// Command lboapi serves a small HTTP API for running LBO scenarios,
// mirroring the teacher's bare net/http style: no framework, manual CORS
// headers per handler, fmt-based startup logging.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"lboengine/pkg/config"
	"lboengine/pkg/lbo"
)

func main() {
	godotenv.Load()

	http.HandleFunc("/api/run", handleRun)

	fmt.Println("LBO API server starting on :8080...")
	fmt.Println("  - POST /api/run")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// handleRun accepts a RawAssumptions JSON body and returns the full
// ResultBundle.
func handleRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw config.RawAssumptions
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	assumptions, err := lbo.NewAssumptions(raw.ToAssumptionsInput())
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid assumptions: %v", err), http.StatusUnprocessableEntity)
		return
	}

	bundle, err := lbo.RunProjection(assumptions)
	if err != nil {
		http.Error(w, fmt.Sprintf("projection failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}
