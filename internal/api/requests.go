package api

import "net/http"

type createRequestRequest struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var body createRequestRequest
	if err := decodeBody(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	request, err := s.requests.Create(r.Context(), userID, body.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	requests, err := s.requests.ListOwn(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	from, size, err := s.pageParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	requests, err := s.requests.ListAll(r.Context(), userID, from, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	request, err := s.requests.Get(r.Context(), userID, requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, request)
}
