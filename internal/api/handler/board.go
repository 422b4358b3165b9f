package handler

import (
	"net/http"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
)

// BoardHandler exposes the board geometry without touching any game
type BoardHandler struct {
	layout board.Layout
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(layout board.Layout) *BoardHandler {
	return &BoardHandler{layout: layout}
}

// Resolve handles POST /api/v1/board/resolve
func (h *BoardHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req request.ThrowRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var hit model.Hit
	var ok bool
	switch {
	case req.Ring != "":
		index := 0
		if req.SectorIndex != nil {
			index = *req.SectorIndex
		}
		hit, ok = board.ResolveZone(index, board.Ring(req.Ring))
		if !ok {
			WriteError(w, model.ErrInvalidThrow)
			return
		}
	case req.X != nil && req.Y != nil:
		hit, ok = h.layout.ResolvePoint(*req.X, *req.Y)
	default:
		WriteError(w, NewInvalidRequestError("resolve needs ring or x/y"))
		return
	}

	resp := response.Resolution{OnBoard: ok}
	if ok {
		resolved := response.HitFromModel(hit)
		resp.Hit = &resolved
	}
	response.JSON(w, http.StatusOK, resp)
}
