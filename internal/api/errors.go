package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"paperforge/internal/providers"
	"paperforge/internal/util"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps orchestrator errors onto HTTP statuses: validation 400,
// lookups 404, provider failures by kind, everything else 500.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidTopic),
		errors.Is(err, util.ErrInputTooShort),
		errors.Is(err, util.ErrInvalidProvider),
		errors.Is(err, util.ErrNoExtractableText):
		writeErr(w, http.StatusBadRequest, err)
	case errors.Is(err, util.ErrRunNotFound),
		errors.Is(err, util.ErrArtifactNotReady):
		writeErr(w, http.StatusNotFound, err)
	case errors.Is(err, util.ErrNoLatexFound):
		writeErr(w, http.StatusBadGateway, err)
	default:
		var pe *providers.ProviderError
		if errors.As(err, &pe) {
			writeErr(w, providerStatus(pe.Kind), err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
	}
}

func providerStatus(kind providers.FailureKind) int {
	switch kind {
	case providers.FailureRateLimited, providers.FailureQuota:
		return http.StatusTooManyRequests
	case providers.FailureOverloaded:
		return http.StatusServiceUnavailable
	case providers.FailureTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "PF-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status == http.StatusTooManyRequests:
		code = "PF-LLM-4290"
		msg = "Provider rate limit or quota hit. Retry later or switch providers."
		if strings.Contains(raw, "quota") {
			msg = "Provider quota exhausted. Check your API limits or switch providers."
		}
	case status == http.StatusServiceUnavailable:
		return apiError{Code: "PF-LLM-5030", Message: "Provider is temporarily overloaded. Retry shortly."}
	case status == http.StatusGatewayTimeout:
		return apiError{Code: "PF-LLM-5040", Message: "Provider call timed out. Retry shortly."}
	case status == http.StatusBadGateway:
		code = "PF-LLM-5020"
		msg = "Upstream provider failed. Retry shortly or check service logs."
		if strings.Contains(raw, "no latex document") {
			msg = "Model output contained no LaTeX document. Retry the generation."
		}
	case status >= 500:
		return apiError{Code: "PF-API-5000", Message: "Internal server error. Please retry or check service logs."}
	case status == http.StatusBadRequest:
		code = "PF-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "PF-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "PF-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "topic must be"):
			msg = "Topic must be at least 3 characters."
		case strings.Contains(raw, "detection input must be"):
			msg = "Detection input must be at least 50 characters."
		case strings.Contains(raw, "unsupported provider"):
			msg = "Provider must be one of: gemini, groq."
		case strings.Contains(raw, "no extractable text"):
			msg = "Could not extract sufficient text from the PDF."
		case strings.Contains(raw, "run not found"):
			msg = "Run was not found."
		case strings.Contains(raw, "artifact not ready"):
			msg = "Requested artifact is not available for this run."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "no file provided"):
			msg = "No PDF file was provided."
		case strings.Contains(raw, "run_id is required"):
			msg = "run_id is required."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
