package echoapi

import (
	"bytes"
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gracemarks/core/application"
)

type applicationApi struct {
	svc application.Service
}

func registerApplicationAPI(g *echo.Group, svc application.Service) {
	api := applicationApi{svc: svc}

	ag := g.Group("/applications")
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/sessions", api.openSession)

	sg := g.Group("/sessions/:sid", api.sessionMiddleware)
	sg.GET("", api.retrieveSession)
	sg.DELETE("", api.abandonSession)
	sg.POST("/commit", api.commitSession)
	sg.PATCH("/events/:eid", api.updateEvent)
	sg.POST("/events/:eid/lock", api.lockEvent)
}

// ApplicationResponse is an Application along with the number of its events having a rule assigned
// and the id of the editing session currently open on it, if any.
type ApplicationResponse struct {
	application.Application
	AssignedRules int         `json:"assigned_rules"`
	OpenSession   null.String `json:"open_session"`
}

func NewApplicationResponse(app application.Application, openSession string) ApplicationResponse {
	return ApplicationResponse{
		Application:   app,
		AssignedRules: app.AssignedCount(),
		OpenSession:   null.NewString(openSession, openSession != ""),
	}
}

func (api *applicationApi) response(app application.Application) ApplicationResponse {
	sid, _ := api.svc.OpenSessionID(app.ID)
	return NewApplicationResponse(app, sid)
}

// Handlers

func (api *applicationApi) query(ctx echo.Context) error {
	apps, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}

	resp := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, api.response(app))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *applicationApi) retrieve(ctx echo.Context) error {
	app, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding application by ID")
	}
	return ctx.JSON(http.StatusOK, api.response(app))
}

func (api *applicationApi) openSession(ctx echo.Context) error {
	sess, err := api.svc.OpenSession(ctx.Param("id"))
	if errors.Cause(err) == application.ErrSessionInProgress {
		if sid, ok := api.svc.OpenSessionID(ctx.Param("id")); ok {
			return echo.NewHTTPError(http.StatusConflict, echo.Map{"error": application.ErrSessionInProgress.Error(), "session_id": sid})
		}
	}
	if err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusCreated, sess.View())
}

func (api *applicationApi) retrieveSession(ctx echo.Context) error {
	sess := ctx.Get("session").(*application.Session)
	return ctx.JSON(http.StatusOK, sess.View())
}

// updateEvent applies the request body on top of the event's current draft:
// omitted fields are left unchanged, null ones are cleared.
func (api *applicationApi) updateEvent(ctx echo.Context) error {
	sess := ctx.Get("session").(*application.Session)

	// read the body before locking the session
	req := ctx.Request()
	body, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	req.Body = ioutil.NopCloser(bytes.NewReader(body))

	err = sess.Patch(ctx.Param("eid"), func(data *application.Draft) error {
		return errors.Wrap(ctx.Bind(data), "binding to application.Draft")
	})
	if err != nil {
		return errors.Wrap(err, "updating event draft")
	}
	return ctx.JSON(http.StatusOK, sess.View())
}

func (api *applicationApi) lockEvent(ctx echo.Context) error {
	sess := ctx.Get("session").(*application.Session)
	if err := sess.Lock(ctx.Param("eid")); err != nil {
		return errors.Wrap(err, "locking event")
	}
	return ctx.JSON(http.StatusOK, sess.View())
}

func (api *applicationApi) commitSession(ctx echo.Context) error {
	app, err := api.svc.Commit(ctx.Param("sid"))
	if err != nil {
		return errors.Wrap(err, "committing session")
	}
	return ctx.JSON(http.StatusOK, api.response(app))
}

func (api *applicationApi) abandonSession(ctx echo.Context) error {
	if err := api.svc.Abandon(ctx.Param("sid")); err != nil {
		return errors.Wrap(err, "abandoning session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// sessionMiddleware loads the session named by the `sid` path param into the context.
func (api *applicationApi) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := api.svc.GetSession(ctx.Param("sid"))
		if err != nil {
			return errors.Wrap(err, "finding session by ID")
		}
		ctx.Set("session", sess)
		return next(ctx)
	}
}
