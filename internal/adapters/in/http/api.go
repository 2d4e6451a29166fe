package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetEstimateParams defines parameters for GetEstimate.
type GetEstimateParams struct {
	Depot string `form:"depot" json:"depot"`
}

// ServerInterface represents all server handlers of openapi.yaml.
type ServerInterface interface {
	// (POST /parties)
	CreateParty(ctx echo.Context) error
	// (GET /parties/{companyId})
	GetParty(ctx echo.Context, companyID string) error

	// (POST /redeliveries)
	CreateRedelivery(ctx echo.Context) error
	// (GET /redeliveries/{redeliveryNumber})
	GetRedelivery(ctx echo.Context, redeliveryNumber string) error
	// (PUT /redeliveries/{redeliveryNumber})
	UpdateRedelivery(ctx echo.Context, redeliveryNumber string) error
	// (POST /redeliveries/{redeliveryNumber}/cancel)
	CancelRedelivery(ctx echo.Context, redeliveryNumber string) error

	// (POST /releases)
	CreateRelease(ctx echo.Context) error
	// (GET /releases/{releaseNumber})
	GetRelease(ctx echo.Context, releaseNumber string) error
	// (PUT /releases/{releaseNumber})
	UpdateRelease(ctx echo.Context, releaseNumber string) error
	// (POST /releases/{releaseNumber}/cancel)
	CancelRelease(ctx echo.Context, releaseNumber string) error

	// (POST /gates)
	CreateGate(ctx echo.Context) error
	// (PUT /gates)
	UpdateGate(ctx echo.Context) error
	// (POST /gates/delete)
	DeleteGate(ctx echo.Context) error
	// (GET /units/{unitNumber}/gate)
	GetCurrentGate(ctx echo.Context, unitNumber string) error
	// (GET /units/{unitNumber}/gates)
	GetUnitGateHistory(ctx echo.Context, unitNumber string) error

	// (POST /estimates)
	CreateEstimate(ctx echo.Context) error
	// (GET /estimates/{estimateNumber})
	GetEstimate(ctx echo.Context, estimateNumber string, params GetEstimateParams) error
	// (POST /estimates/{estimateNumber}/revisions)
	ReviseEstimate(ctx echo.Context, estimateNumber string) error
	// (POST /estimates/{estimateNumber}/approval)
	ApproveEstimate(ctx echo.Context, estimateNumber string) error
	// (POST /estimates/{estimateNumber}/cancel)
	CancelEstimate(ctx echo.Context, estimateNumber string) error
	// (POST /estimates/{estimateNumber}/allocation)
	GetEstimateAllocation(ctx echo.Context, estimateNumber string) error

	// (POST /workorders)
	CreateWorkOrder(ctx echo.Context) error
	// (GET /workorders/{workOrderNumber})
	GetWorkOrder(ctx echo.Context, workOrderNumber string) error
	// (POST /workorders/{workOrderNumber}/units/{unitNumber}/repair)
	CompleteWorkOrderUnit(ctx echo.Context, workOrderNumber string, unitNumber string) error
	// (POST /workorders/{workOrderNumber}/units/{unitNumber}/remove)
	RemoveWorkOrderUnit(ctx echo.Context, workOrderNumber string, unitNumber string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathParam(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func (w *ServerInterfaceWrapper) CreateParty(ctx echo.Context) error {
	return w.Handler.CreateParty(ctx)
}

func (w *ServerInterfaceWrapper) GetParty(ctx echo.Context) error {
	companyID, err := pathParam(ctx, "companyId")
	if err != nil {
		return err
	}
	return w.Handler.GetParty(ctx, companyID)
}

func (w *ServerInterfaceWrapper) CreateRedelivery(ctx echo.Context) error {
	return w.Handler.CreateRedelivery(ctx)
}

func (w *ServerInterfaceWrapper) GetRedelivery(ctx echo.Context) error {
	number, err := pathParam(ctx, "redeliveryNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetRedelivery(ctx, number)
}

func (w *ServerInterfaceWrapper) UpdateRedelivery(ctx echo.Context) error {
	number, err := pathParam(ctx, "redeliveryNumber")
	if err != nil {
		return err
	}
	return w.Handler.UpdateRedelivery(ctx, number)
}

func (w *ServerInterfaceWrapper) CancelRedelivery(ctx echo.Context) error {
	number, err := pathParam(ctx, "redeliveryNumber")
	if err != nil {
		return err
	}
	return w.Handler.CancelRedelivery(ctx, number)
}

func (w *ServerInterfaceWrapper) CreateRelease(ctx echo.Context) error {
	return w.Handler.CreateRelease(ctx)
}

func (w *ServerInterfaceWrapper) GetRelease(ctx echo.Context) error {
	number, err := pathParam(ctx, "releaseNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetRelease(ctx, number)
}

func (w *ServerInterfaceWrapper) UpdateRelease(ctx echo.Context) error {
	number, err := pathParam(ctx, "releaseNumber")
	if err != nil {
		return err
	}
	return w.Handler.UpdateRelease(ctx, number)
}

func (w *ServerInterfaceWrapper) CancelRelease(ctx echo.Context) error {
	number, err := pathParam(ctx, "releaseNumber")
	if err != nil {
		return err
	}
	return w.Handler.CancelRelease(ctx, number)
}

func (w *ServerInterfaceWrapper) CreateGate(ctx echo.Context) error {
	return w.Handler.CreateGate(ctx)
}

func (w *ServerInterfaceWrapper) UpdateGate(ctx echo.Context) error {
	return w.Handler.UpdateGate(ctx)
}

func (w *ServerInterfaceWrapper) DeleteGate(ctx echo.Context) error {
	return w.Handler.DeleteGate(ctx)
}

func (w *ServerInterfaceWrapper) GetCurrentGate(ctx echo.Context) error {
	unitNumber, err := pathParam(ctx, "unitNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetCurrentGate(ctx, unitNumber)
}

func (w *ServerInterfaceWrapper) GetUnitGateHistory(ctx echo.Context) error {
	unitNumber, err := pathParam(ctx, "unitNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetUnitGateHistory(ctx, unitNumber)
}

func (w *ServerInterfaceWrapper) CreateEstimate(ctx echo.Context) error {
	return w.Handler.CreateEstimate(ctx)
}

func (w *ServerInterfaceWrapper) GetEstimate(ctx echo.Context) error {
	number, err := pathParam(ctx, "estimateNumber")
	if err != nil {
		return err
	}

	var params GetEstimateParams
	err = runtime.BindQueryParameter("form", true, true, "depot", ctx.QueryParams(), &params.Depot)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter depot: %s", err))
	}

	return w.Handler.GetEstimate(ctx, number, params)
}

func (w *ServerInterfaceWrapper) ReviseEstimate(ctx echo.Context) error {
	number, err := pathParam(ctx, "estimateNumber")
	if err != nil {
		return err
	}
	return w.Handler.ReviseEstimate(ctx, number)
}

func (w *ServerInterfaceWrapper) ApproveEstimate(ctx echo.Context) error {
	number, err := pathParam(ctx, "estimateNumber")
	if err != nil {
		return err
	}
	return w.Handler.ApproveEstimate(ctx, number)
}

func (w *ServerInterfaceWrapper) CancelEstimate(ctx echo.Context) error {
	number, err := pathParam(ctx, "estimateNumber")
	if err != nil {
		return err
	}
	return w.Handler.CancelEstimate(ctx, number)
}

func (w *ServerInterfaceWrapper) GetEstimateAllocation(ctx echo.Context) error {
	number, err := pathParam(ctx, "estimateNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetEstimateAllocation(ctx, number)
}

func (w *ServerInterfaceWrapper) CreateWorkOrder(ctx echo.Context) error {
	return w.Handler.CreateWorkOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetWorkOrder(ctx echo.Context) error {
	number, err := pathParam(ctx, "workOrderNumber")
	if err != nil {
		return err
	}
	return w.Handler.GetWorkOrder(ctx, number)
}

func (w *ServerInterfaceWrapper) CompleteWorkOrderUnit(ctx echo.Context) error {
	number, err := pathParam(ctx, "workOrderNumber")
	if err != nil {
		return err
	}
	unitNumber, err := pathParam(ctx, "unitNumber")
	if err != nil {
		return err
	}
	return w.Handler.CompleteWorkOrderUnit(ctx, number, unitNumber)
}

func (w *ServerInterfaceWrapper) RemoveWorkOrderUnit(ctx echo.Context) error {
	number, err := pathParam(ctx, "workOrderNumber")
	if err != nil {
		return err
	}
	unitNumber, err := pathParam(ctx, "unitNumber")
	if err != nil {
		return err
	}
	return w.Handler.RemoveWorkOrderUnit(ctx, number, unitNumber)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group routes are added to.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under a path prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/parties", wrapper.CreateParty)
	router.GET(baseURL+"/parties/:companyId", wrapper.GetParty)

	router.POST(baseURL+"/redeliveries", wrapper.CreateRedelivery)
	router.GET(baseURL+"/redeliveries/:redeliveryNumber", wrapper.GetRedelivery)
	router.PUT(baseURL+"/redeliveries/:redeliveryNumber", wrapper.UpdateRedelivery)
	router.POST(baseURL+"/redeliveries/:redeliveryNumber/cancel", wrapper.CancelRedelivery)

	router.POST(baseURL+"/releases", wrapper.CreateRelease)
	router.GET(baseURL+"/releases/:releaseNumber", wrapper.GetRelease)
	router.PUT(baseURL+"/releases/:releaseNumber", wrapper.UpdateRelease)
	router.POST(baseURL+"/releases/:releaseNumber/cancel", wrapper.CancelRelease)

	router.POST(baseURL+"/gates", wrapper.CreateGate)
	router.PUT(baseURL+"/gates", wrapper.UpdateGate)
	router.POST(baseURL+"/gates/delete", wrapper.DeleteGate)
	router.GET(baseURL+"/units/:unitNumber/gate", wrapper.GetCurrentGate)
	router.GET(baseURL+"/units/:unitNumber/gates", wrapper.GetUnitGateHistory)

	router.POST(baseURL+"/estimates", wrapper.CreateEstimate)
	router.GET(baseURL+"/estimates/:estimateNumber", wrapper.GetEstimate)
	router.POST(baseURL+"/estimates/:estimateNumber/revisions", wrapper.ReviseEstimate)
	router.POST(baseURL+"/estimates/:estimateNumber/approval", wrapper.ApproveEstimate)
	router.POST(baseURL+"/estimates/:estimateNumber/cancel", wrapper.CancelEstimate)
	router.POST(baseURL+"/estimates/:estimateNumber/allocation", wrapper.GetEstimateAllocation)

	router.POST(baseURL+"/workorders", wrapper.CreateWorkOrder)
	router.GET(baseURL+"/workorders/:workOrderNumber", wrapper.GetWorkOrder)
	router.POST(baseURL+"/workorders/:workOrderNumber/units/:unitNumber/repair", wrapper.CompleteWorkOrderUnit)
	router.POST(baseURL+"/workorders/:workOrderNumber/units/:unitNumber/remove", wrapper.RemoveWorkOrderUnit)
}
