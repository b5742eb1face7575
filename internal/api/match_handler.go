package api

import (
	"github.com/zaikaman/KaspaClash-sub007/internal/service"
	"github.com/zaikaman/KaspaClash-sub007/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo storage.Repository
	svc  *service.Service
}

// NewMatchHandler creates a new MatchHandler over the repository and the
// combat service.
func NewMatchHandler(repo storage.Repository, svc *service.Service) *MatchHandler {
	return &MatchHandler{repo: repo, svc: svc}
}
