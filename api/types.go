package api

import (
	"encoding/json"
	"net/http"
)

// SubmitRequest is the payload for scoring a filled questionnaire. Answers
// and elaborations are keyed by the stringified leaf sequence, the shape
// submission capture produces regardless of channel.
type SubmitRequest struct {
	OrgName      string            `json:"org_name"`
	OrgType      string            `json:"org_type"`
	Tier         string            `json:"tier"`
	Level        string            `json:"level"`
	Answers      map[string]string `json:"answers"`
	Elaborations map[string]string `json:"elaborations,omitempty"`
}

// BatchSubmitRequest scores many questionnaires of one respondent category
// against the same indicator level in a single request.
type BatchSubmitRequest struct {
	OrgType     string                `json:"org_type"`
	Tier        string                `json:"tier"`
	Level       string                `json:"level"`
	Submissions []BatchSubmissionItem `json:"submissions"`
}

// BatchSubmissionItem is one questionnaire inside a batch request.
type BatchSubmissionItem struct {
	OrgName      string            `json:"org_name"`
	Answers      map[string]string `json:"answers"`
	Elaborations map[string]string `json:"elaborations,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
