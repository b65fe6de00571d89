package http

import (
	"context"

	http_router "github.com/lintang-b-s/navigatorx-curvature/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-curvature/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-curvature/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. serve the curvature API until ctx is cancelled or the server fails.
func (s *Server) Use(
	ctx context.Context,

	useRateLimit bool,
	curvatureService controllers.CurvatureService,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(s.Log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gctx, config, useRateLimit, curvatureService)
	})

	return g.Wait()
}
