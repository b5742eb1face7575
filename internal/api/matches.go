package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"github.com/zaikaman/KaspaClash-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateMatchPayload struct {
	DisplayName  string `json:"display_name"`
	CharacterKey string `json:"character_key"`
	VsBot        bool   `json:"vs_bot"`
}

// CreateMatch creates a new match and returns its code. Bot matches start
// immediately; otherwise the match waits for an opponent.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if utf8.RuneCountInString(req.DisplayName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	m, err := h.svc.CreateMatch(c.Request.Context(), service.CreateMatchRequest{
		MatchCode:    generateMatchCode(),
		Address:      walletFromContext(c),
		DisplayName:  req.DisplayName,
		CharacterKey: req.CharacterKey,
		VsBot:        req.VsBot,
	})
	if err != nil {
		switch err {
		case service.ErrUnknownCharacter:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCharacter})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_code":             m.MatchCode,
		constants.JSONKeyStatus:  m.Status,
		constants.JSONKeyMessage: m.Message,
	})
}

type JoinMatchPayload struct {
	MatchCode    string `json:"match_code"`
	DisplayName  string `json:"display_name"`
	CharacterKey string `json:"character_key"`
}

// JoinMatch seats the second player via match code and starts the match.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeMatchCode(req.MatchCode)
	if code == "" || !matchCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	m, err := h.svc.JoinMatch(c.Request.Context(), code, walletFromContext(c), req.DisplayName, req.CharacterKey)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		case service.ErrCannotJoinOwnMatch:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCannotJoinOwnMatch})
		case service.ErrUnknownCharacter:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCharacter})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatch returns a match by its code.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	code := normalizeMatchCode(c.Param("matchCode"))
	if code == "" || !matchCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	m, err := h.repo.GetMatchByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListOpenMatches returns recent lobbies still waiting for an opponent.
func (h *MatchHandler) ListOpenMatches(c *gin.Context) {
	matches, err := h.repo.GetOpenMatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(matches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

type MovePayload struct {
	Move string `json:"move"`
}

// SubmitMove stores the calling player's move for the current turn.
func (h *MatchHandler) SubmitMove(c *gin.Context) {
	code := normalizeMatchCode(c.Param("matchCode"))
	if code == "" || !matchCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	var req MovePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	m, resolved, err := h.svc.SubmitMove(c.Request.Context(), code, walletFromContext(c), game.MoveType(req.Move))
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
		case service.ErrMovesLocked:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMovesLockedResolving})
		case service.ErrMoveAlreadySubmitted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMoveAlreadySubmitted})
		case service.ErrNotAParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAParticipant})
		case service.ErrInvalidMove:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMove})
		case service.ErrInsufficientEnergy:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{
			constants.JSONKeyMessage: "Turn resolved",
			"summary":                m.LastTurnSummary,
			"round":                  m.RoundNumber,
			"turn":                   m.TurnNumber,
			constants.JSONKeyStatus:  m.Status,
		})
	} else {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Move stored. Waiting for opponent."})
	}
}

// Resign ends the match; the caller takes the loss.
func (h *MatchHandler) Resign(c *gin.Context) {
	code := normalizeMatchCode(c.Param("matchCode"))
	if code == "" || !matchCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}

	m, err := h.svc.Resign(c.Request.Context(), code, walletFromContext(c))
	if err != nil {
		switch err {
		case service.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case service.ErrMatchNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
		case service.ErrNotAParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotAParticipant})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: m.Message,
		"winner":                 m.Winner,
		constants.JSONKeyStatus:  m.Status,
	})
}
