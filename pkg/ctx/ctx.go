package ctx

import (
	"context"

	"github.com/go-stride/stride/pkg/database"
	"github.com/go-stride/stride/pkg/log"
	"github.com/redis/go-redis/v9"
)

// Context carries the shared process-wide handles. It is built once at
// bootstrap and passed into repositories and services explicitly so that
// tests can construct one without a live connection.
type Context struct {
	Mongo database.IMongoDB
	Redis *redis.Client
	Ctx   context.Context
	Log   log.ILogger
}

func NewContext(ctx context.Context, mongo database.IMongoDB, rdb *redis.Client, logger log.ILogger) *Context {
	return &Context{
		Mongo: mongo,
		Redis: rdb,
		Ctx:   ctx,
		Log:   logger,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}
