package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/optiflow/internal/focus/domain"
)

func registerFocusTools(srv *mcp.Server, ts *toolset) error {
	srv.Tool("focus.status").
		Description("Current focus clock: phase, state and remaining time").
		Handler(ts.focusOp("status"))

	srv.Tool("focus.start").
		Description("Start the focus clock, or resume it when paused").
		Handler(ts.focusOp("start"))

	srv.Tool("focus.pause").
		Description("Pause the running focus clock").
		Handler(ts.focusOp("pause"))

	srv.Tool("focus.resume").
		Description("Resume the paused focus clock").
		Handler(ts.focusOp("resume"))

	srv.Tool("focus.reset").
		Description("Reset the focus clock to a full work phase").
		Handler(ts.focusOp("reset"))

	return nil
}

func (ts *toolset) focusOp(op string) func(context.Context, struct{}) (*domain.Session, error) {
	return func(ctx context.Context, input struct{}) (*domain.Session, error) {
		svc := ts.app.FocusService
		if svc == nil {
			return nil, errNotConfigured
		}
		switch op {
		case "start":
			return svc.Start(ctx)
		case "pause":
			return svc.Pause(ctx)
		case "resume":
			return svc.Resume(ctx)
		case "reset":
			return svc.Reset(ctx)
		default:
			return svc.Status(ctx)
		}
	}
}
