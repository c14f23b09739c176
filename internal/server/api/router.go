package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route paths, shared with the client.
const (
	PathPing         = "/ping"
	PathSignUp       = "/signup"
	PathAuthenticate = "/authenticate"
	PathUserProfile  = "/userProfile"
	PathSyncExpenses = "/syncExpenses"
	PathMetrics      = "/metrics"
)

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), metricsMiddleware())

	r.GET(PathPing, s.handlePing)
	r.POST(PathSignUp, s.handleSignUp)
	r.POST(PathAuthenticate, s.handleAuthenticate)
	r.GET(PathUserProfile, s.requireUser(), s.handleUserProfile)
	r.POST(PathSyncExpenses, s.optionalUser(), s.handleSyncExpenses)
	r.GET(PathMetrics, gin.WrapH(promhttp.Handler()))

	return r
}
