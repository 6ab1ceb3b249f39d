package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"domainlookup/internal/whois/models"
)

// BatchRequest is the body of POST /v1/whois/batch.
type BatchRequest struct {
	Domains []string `json:"domains"`
}

func (r BatchRequest) validate() ([]string, error) {
	switch {
	case len(r.Domains) == 0:
		return nil, fmt.Errorf("domains must contain between 1 and %d entries", MaxBatchSize)
	case len(r.Domains) > MaxBatchSize:
		return nil, fmt.Errorf("domains must contain between 1 and %d entries, got %d", MaxBatchSize, len(r.Domains))
	}
	domains := make([]string, len(r.Domains))
	for i, raw := range r.Domains {
		domain, err := validateDomain(raw)
		if err != nil {
			return nil, fmt.Errorf("domains[%d]: %w", i, err)
		}
		domains[i] = domain
	}
	return domains, nil
}

// BatchResponse lists results in request order.
type BatchResponse struct {
	Results []models.LookupResult `json:"results"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, ErrorDescription: description})
}
