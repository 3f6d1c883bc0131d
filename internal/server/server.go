// Package server exposes an authorcore.Core over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/graph"
)

// GraphQLPath is where both the API and the playground are mounted.
const GraphQLPath = "/graphql"

// Greeting is the body served at the root path.
const Greeting = "Hello, World!!"

// Options configures the HTTP handler.
type Options struct {
	DisablePlayground bool
	Logger            *zap.Logger
}

// New builds the HTTP handler for core.
func New(core *authorcore.Core, opts Options) (http.Handler, error) {
	schema, err := graph.NewSchema(graph.NewResolver(core))
	if err != nil {
		return nil, err
	}
	return newRouter(core, schema, opts), nil
}

func newRouter(core *authorcore.Core, schema *graphql.Schema, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "authors": core.Len()})
	})

	// POST executes; GET serves the playground
	r.POST(GraphQLPath, gin.WrapH(&relay.Handler{Schema: schema}))
	if !opts.DisablePlayground {
		r.GET(GraphQLPath, gin.WrapH(playground.Handler("Authors GraphQL", GraphQLPath)))
	}

	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Warn("request", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Debug("request", fields...)
	}
}
