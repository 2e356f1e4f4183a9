package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// corsMiddleware stamps every response and short-circuits preflights.
// The API carries no credentials, only the player header, so a wildcard
// origin is acceptable.
func corsMiddleware() app.HandlerFunc {
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, " + playerIDHeader,
		"Access-Control-Max-Age":       "600",
	}
	return func(c context.Context, ctx *app.RequestContext) {
		for name, value := range headers {
			ctx.Response.Header.Set(name, value)
		}
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
