package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
	exportsvc "github.com/trezcool/apar/services/export"
	notifysvc "github.com/trezcool/apar/services/notify"
)

type assessmentApi struct {
	svc      *assessment.Service
	inbox    *notifysvc.Inbox
	validate *validator.Validate
}

func registerAssessmentAPI(
	g *echo.Group,
	svc *assessment.Service,
	inbox *notifysvc.Inbox,
	validate *validator.Validate,
) {
	api := assessmentApi{
		svc:      svc,
		inbox:    inbox,
		validate: validate,
	}

	ag := g.Group("/assessments")
	ag.POST("", api.start)

	// detail endpoints
	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.discard)
	dg.POST("/next", api.next)
	dg.POST("/previous", api.previous)
	dg.GET("/notices", api.notices)
	dg.GET("/export", api.export)

	// section endpoints
	dg.PATCH("/:section", api.setField)
	dg.POST("/:section/submit", api.submitSection)
	dg.POST("/:section/rows", api.addRow)
	dg.PATCH("/:section/rows/:row", api.updateRow)
	dg.DELETE("/:section/rows/:row", api.deleteRow)
	dg.POST("/:section/rows/:row/submit", api.submitRow)
}

// respond sends the snapshot along with the notices raised so far.
func (api *assessmentApi) respond(ctx echo.Context, code int, snap assessment.Snapshot) error {
	return ctx.JSON(code, AssessmentResponse{
		Assessment: snap,
		Notices:    api.inbox.Drain(snap.ID),
	})
}

// Handlers

func (api *assessmentApi) start(ctx echo.Context) error {
	snap, err := api.svc.Start(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "starting assessment")
	}
	return api.respond(ctx, http.StatusCreated, snap)
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	snap, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) discard(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Discard(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.inbox.Forget(id)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assessmentApi) next(ctx echo.Context) error {
	snap, err := api.svc.Advance(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) previous(ctx echo.Context) error {
	snap, err := api.svc.Retreat(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) notices(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, err := api.svc.Get(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NoticesResponse{Notices: api.inbox.Drain(id)})
}

func (api *assessmentApi) export(ctx echo.Context) error {
	snap, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, exportsvc.ContentType)
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="assessment-`+snap.ID+`.xlsx"`)
	resp.WriteHeader(http.StatusOK)
	return exportsvc.Write(resp, snap)
}

func (api *assessmentApi) setField(ctx echo.Context) error {
	var data FieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	snap, err := api.svc.SetField(ctx.Request().Context(), ctx.Param("id"), ctx.Param("section"), data.Field, data.Raw())
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) addRow(ctx echo.Context) error {
	rowID, snap, err := api.svc.AddRow(ctx.Request().Context(), ctx.Param("id"), ctx.Param("section"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, RowResponse{RowID: rowID, Assessment: snap})
}

func (api *assessmentApi) updateRow(ctx echo.Context) error {
	var data FieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	snap, err := api.svc.UpdateRow(
		ctx.Request().Context(), ctx.Param("id"), ctx.Param("section"), ctx.Param("row"), data.Field, data.Raw(),
	)
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) deleteRow(ctx echo.Context) error {
	id := ctx.Param("id")
	snap, err := api.svc.DeleteRow(ctx.Request().Context(), id, ctx.Param("section"), ctx.Param("row"))
	if err != nil {
		if core.IsRefused(err) {
			api.inbox.Drain(id) // the refusal is the response itself
		}
		return err
	}
	return api.respond(ctx, http.StatusOK, snap)
}

func (api *assessmentApi) submitRow(ctx echo.Context) error {
	return api.submit(ctx, ctx.Param("row"))
}

func (api *assessmentApi) submitSection(ctx echo.Context) error {
	return api.submit(ctx, "")
}

// submit waits for the remote answer; the notice raised is the response.
func (api *assessmentApi) submit(ctx echo.Context, rowID string) error {
	id := ctx.Param("id")
	if err := api.svc.Submit(ctx.Request().Context(), id, ctx.Param("section"), rowID); err != nil {
		notices := api.inbox.Drain(id)
		if core.IsTransport(err) && len(notices) > 0 {
			return echo.NewHTTPError(http.StatusBadGateway, notices[len(notices)-1].Message).SetInternal(err)
		}
		return err
	}
	return ctx.JSON(http.StatusOK, NoticesResponse{Notices: api.inbox.Drain(id)})
}
