package api

import (
	"net/http"

	"shareit/internal/models"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"request_id,omitempty"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var body createItemRequest
	if err := decodeBody(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}
	if body.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	item, err := s.items.Create(r.Context(), userID, &models.Item{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var patch models.ItemPatch
	if err := decodeBody(r, &patch); err != nil {
		writeServiceError(w, err)
		return
	}

	item, err := s.items.Update(r.Context(), userID, itemID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	details, err := s.items.Get(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := s.items.ListByOwner(r.Context(), userID, from, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromHeader(r); err != nil {
		writeServiceError(w, err)
		return
	}

	from, size, err := s.pageParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromHeader(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var body createCommentRequest
	if err := decodeBody(r, &body); err != nil {
		writeServiceError(w, err)
		return
	}

	comment, err := s.items.CreateComment(r.Context(), userID, itemID, body.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
