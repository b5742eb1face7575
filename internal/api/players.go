package api

import (
	"net/http"
	"strconv"

	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListCharacters returns the playable roster with config-resolved stats.
func (h *MatchHandler) ListCharacters(c *gin.Context) {
	characters, err := h.repo.GetCharacters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacters})
		return
	}
	c.JSON(http.StatusOK, characters)
}

// ListLeaderboard returns the ladder ordered by rating (desc), limited to
// the top 10 by default.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	fighters, err := h.repo.GetTopFighters(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(fighters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayer returns the fighter profile for a wallet address.
func (h *MatchHandler) GetPlayer(c *gin.Context) {
	addr := normalizeWalletAddress(c.Param("address"))
	if addr == "" || !walletRegex.MatchString(addr) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAddress})
		return
	}
	f, err := h.repo.GetFighterByAddress(c.Request.Context(), addr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	c.JSON(http.StatusOK, out)
}
