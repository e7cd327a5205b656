package http

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Lending action names accepted by the action endpoint.
const (
	ActionBorrow        = "borrow"
	ActionReturnRequest = "return_request"
	ActionConfirmReturn = "confirm_return"
)

// LendingService defines the state-changing lending operations.
type LendingService interface {
	Borrow(ctx context.Context, bookID, actorID uint) error
	RequestReturn(ctx context.Context, bookID, actorID uint) error
	ConfirmReturn(ctx context.Context, bookID, actorID uint) error
}

type LendingController struct {
	lending LendingService
}

func NewLendingController(lending LendingService) *LendingController {
	return &LendingController{lending: lending}
}

type actionRequest struct {
	Action string `json:"action" binding:"required"`
}

// Action dispatches a lending transition for a book copy. The actor comes
// from the request's resolved identity, never from the payload.
// POST /api/books/:id/action
func (controller *LendingController) Action(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "action is required")
		return
	}

	actorID := GetActorID(c)
	ctx := c.Request.Context()

	var err error
	switch req.Action {
	case ActionBorrow:
		err = controller.lending.Borrow(ctx, id, actorID)
	case ActionReturnRequest:
		err = controller.lending.RequestReturn(ctx, id, actorID)
	case ActionConfirmReturn:
		err = controller.lending.ConfirmReturn(ctx, id, actorID)
	default:
		respondBadRequest(c, "unknown action: "+req.Action)
		return
	}

	if err != nil {
		respondDomainError(c, err, req.Action)
		return
	}

	respondSuccess(c)
}
