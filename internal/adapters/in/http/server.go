package http

import (
	"context"
	"net/http"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CommandHandler executes one command type.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler answers one query type.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases served over HTTP.
type Handlers struct {
	CreateParty CommandHandler[commands.CreatePartyCommand]
	GetParty    QueryHandler[queries.GetPartyQuery, queries.GetPartyQueryResponse]

	CreateRedelivery CommandHandler[commands.CreateRedeliveryCommand]
	UpdateRedelivery CommandHandler[commands.UpdateRedeliveryCommand]
	CancelRedelivery CommandHandler[commands.CancelRedeliveryCommand]
	GetRedelivery    QueryHandler[queries.GetRedeliveryQuery, queries.GetRedeliveryQueryResponse]

	CreateRelease CommandHandler[commands.CreateReleaseCommand]
	UpdateRelease CommandHandler[commands.UpdateReleaseCommand]
	CancelRelease CommandHandler[commands.CancelReleaseCommand]
	GetRelease    QueryHandler[queries.GetReleaseQuery, queries.GetReleaseQueryResponse]

	CreateGate         CommandHandler[commands.CreateGateCommand]
	UpdateGate         CommandHandler[commands.UpdateGateCommand]
	DeleteGate         CommandHandler[commands.DeleteGateCommand]
	GetCurrentGate     QueryHandler[queries.GetCurrentGateQuery, queries.GetCurrentGateQueryResponse]
	GetUnitGateHistory QueryHandler[queries.GetUnitGateHistoryQuery, queries.GetUnitGateHistoryQueryResponse]

	CreateEstimate        CommandHandler[commands.CreateEstimateCommand]
	ReviseEstimate        CommandHandler[commands.ReviseEstimateCommand]
	ApproveEstimate       CommandHandler[commands.ApproveEstimateCommand]
	CancelEstimate        CommandHandler[commands.CancelEstimateCommand]
	GetEstimate           QueryHandler[queries.GetEstimateQuery, queries.GetEstimateQueryResponse]
	GetEstimateAllocation QueryHandler[queries.GetEstimateAllocationQuery, queries.GetEstimateAllocationQueryResponse]

	CreateWorkOrder       CommandHandler[commands.CreateWorkOrderCommand]
	CompleteWorkOrderUnit CommandHandler[commands.WorkOrderUnitCommand]
	RemoveWorkOrderUnit   CommandHandler[commands.WorkOrderUnitCommand]
	GetWorkOrder          QueryHandler[queries.GetWorkOrderQuery, queries.GetWorkOrderQueryResponse]
}

// Server implements ServerInterface on top of the application use cases.
// Handler errors are rendered by ErrorHandler.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

var binder = &echo.DefaultBinder{}

// decode reads the JSON body only. Path and query values are passed to the
// command constructors explicitly.
func decode(ctx echo.Context, payload any) error {
	return binder.BindBody(ctx, payload)
}

func execute[C any](ctx echo.Context, handler CommandHandler[C], cmd C, status int) error {
	if err := handler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(status)
}

func answer[Q, R any](ctx echo.Context, handler QueryHandler[Q, R], query Q) error {
	response, err := handler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateParty handles POST /api/v1/parties.
func (s *Server) CreateParty(ctx echo.Context) error {
	var payload requests.PartyRegistration
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreatePartyCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateParty, cmd, http.StatusCreated)
}

// GetParty handles GET /api/v1/parties/{companyId}.
func (s *Server) GetParty(ctx echo.Context, companyID string) error {
	query, err := queries.NewGetPartyQuery(companyID)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetParty, query)
}

func (s *Server) CreateRedelivery(ctx echo.Context) error {
	var payload requests.Redelivery
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreateRedeliveryCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateRedelivery, cmd, http.StatusCreated)
}

func (s *Server) GetRedelivery(ctx echo.Context, redeliveryNumber string) error {
	query, err := queries.NewGetRedeliveryQuery(redeliveryNumber)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetRedelivery, query)
}

// UpdateRedelivery replaces the addressed redelivery. External callers
// create it when it does not exist.
func (s *Server) UpdateRedelivery(ctx echo.Context, redeliveryNumber string) error {
	var payload requests.Redelivery
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateRedeliveryCommand(callerOf(ctx), redeliveryNumber, payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.UpdateRedelivery, cmd, http.StatusNoContent)
}

func (s *Server) CancelRedelivery(ctx echo.Context, redeliveryNumber string) error {
	cmd, err := commands.NewCancelRedeliveryCommand(callerOf(ctx), redeliveryNumber)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CancelRedelivery, cmd, http.StatusNoContent)
}

func (s *Server) CreateRelease(ctx echo.Context) error {
	var payload requests.Release
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreateReleaseCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateRelease, cmd, http.StatusCreated)
}

func (s *Server) GetRelease(ctx echo.Context, releaseNumber string) error {
	query, err := queries.NewGetReleaseQuery(releaseNumber)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetRelease, query)
}

func (s *Server) UpdateRelease(ctx echo.Context, releaseNumber string) error {
	var payload requests.Release
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateReleaseCommand(callerOf(ctx), releaseNumber, payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.UpdateRelease, cmd, http.StatusNoContent)
}

func (s *Server) CancelRelease(ctx echo.Context, releaseNumber string) error {
	cmd, err := commands.NewCancelReleaseCommand(callerOf(ctx), releaseNumber)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CancelRelease, cmd, http.StatusNoContent)
}

// CreateGate handles POST /api/v1/gates.
func (s *Server) CreateGate(ctx echo.Context) error {
	var payload requests.Gate
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreateGateCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateGate, cmd, http.StatusCreated)
}

func (s *Server) UpdateGate(ctx echo.Context) error {
	var payload requests.Gate
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateGateCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.UpdateGate, cmd, http.StatusNoContent)
}

func (s *Server) DeleteGate(ctx echo.Context) error {
	var payload requests.GateDelete
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewDeleteGateCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.DeleteGate, cmd, http.StatusNoContent)
}

func (s *Server) GetCurrentGate(ctx echo.Context, unitNumber string) error {
	query, err := queries.NewGetCurrentGateQuery(unitNumber)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetCurrentGate, query)
}

func (s *Server) GetUnitGateHistory(ctx echo.Context, unitNumber string) error {
	query, err := queries.NewGetUnitGateHistoryQuery(unitNumber)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetUnitGateHistory, query)
}

func (s *Server) CreateEstimate(ctx echo.Context) error {
	var payload requests.Estimate
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreateEstimateCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateEstimate, cmd, http.StatusCreated)
}

func (s *Server) GetEstimate(ctx echo.Context, estimateNumber string, params GetEstimateParams) error {
	query, err := queries.NewGetEstimateQuery(estimateNumber, params.Depot)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetEstimate, query)
}

func (s *Server) ReviseEstimate(ctx echo.Context, estimateNumber string) error {
	var payload requests.EstimateRevision
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewReviseEstimateCommand(callerOf(ctx), estimateNumber, payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.ReviseEstimate, cmd, http.StatusCreated)
}

func (s *Server) ApproveEstimate(ctx echo.Context, estimateNumber string) error {
	var payload requests.EstimateApproval
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewApproveEstimateCommand(callerOf(ctx), estimateNumber, payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.ApproveEstimate, cmd, http.StatusNoContent)
}

func (s *Server) CancelEstimate(ctx echo.Context, estimateNumber string) error {
	var payload requests.EstimateCancel
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCancelEstimateCommand(callerOf(ctx), estimateNumber, payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CancelEstimate, cmd, http.StatusNoContent)
}

// GetEstimateAllocation handles POST /api/v1/estimates/{estimateNumber}/allocation.
// The body carries the decision inputs, nothing is stored.
func (s *Server) GetEstimateAllocation(ctx echo.Context, estimateNumber string) error {
	var payload requests.EstimateAllocation
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	query, err := queries.NewGetEstimateAllocationQuery(estimateNumber, payload)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetEstimateAllocation, query)
}

func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	var payload requests.WorkOrder
	if err := decode(ctx, &payload); err != nil {
		return err
	}
	cmd, err := commands.NewCreateWorkOrderCommand(callerOf(ctx), payload)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CreateWorkOrder, cmd, http.StatusCreated)
}

func (s *Server) GetWorkOrder(ctx echo.Context, workOrderNumber string) error {
	query, err := queries.NewGetWorkOrderQuery(workOrderNumber)
	if err != nil {
		return err
	}
	return answer(ctx, s.h.GetWorkOrder, query)
}

func (s *Server) CompleteWorkOrderUnit(ctx echo.Context, workOrderNumber string, unitNumber string) error {
	cmd, err := commands.NewWorkOrderUnitCommand(callerOf(ctx), workOrderNumber, unitNumber)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.CompleteWorkOrderUnit, cmd, http.StatusNoContent)
}

func (s *Server) RemoveWorkOrderUnit(ctx echo.Context, workOrderNumber string, unitNumber string) error {
	cmd, err := commands.NewWorkOrderUnitCommand(callerOf(ctx), workOrderNumber, unitNumber)
	if err != nil {
		return err
	}
	return execute(ctx, s.h.RemoveWorkOrderUnit, cmd, http.StatusNoContent)
}
