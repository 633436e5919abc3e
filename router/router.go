package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/endpoints"
	contentEndpoints "github.com/prebid/prebid-content-server/endpoints/openrtb2"
	"github.com/prebid/prebid-content-server/logger"
	"github.com/prebid/prebid-content-server/metrics"
	metricsConf "github.com/prebid/prebid-content-server/metrics/config"
	"github.com/prebid/prebid-content-server/router/aspects"
	"github.com/rs/cors"
)

// Admin returns the mux served on the admin port.
func Admin(revision, version string) *http.ServeMux {
	// Add endpoints to the admin server
	adminRouter := http.NewServeMux()
	adminRouter.HandleFunc("/version", endpoints.NewVersionEndpoint(version, revision))
	return adminRouter
}

type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

type Router struct {
	*httprouter.Router
	MetricsEngine *metricsConf.DetailedMetricsEngine
}

// New builds the main router with every content endpoint registered.
func New(cfg *config.Configuration) (r *Router, err error) {
	r = &Router{
		Router: httprouter.New(),
	}

	r.MetricsEngine = metricsConf.NewMetricsEngine(cfg)
	register(r.Router, cfg, r.MetricsEngine)

	logger.Infof("Content endpoints registered, max request size %d bytes", cfg.MaxRequestSize)
	return r, nil
}

func register(router *httprouter.Router, cfg *config.Configuration, metricsEngine metrics.MetricsEngine) {
	wrap := func(handle httprouter.Handle, endpoint metrics.Endpoint) httprouter.Handle {
		return aspects.RequestID(aspects.QueuedRequestTimeout(handle, cfg.RequestTimeoutHeaders, metricsEngine, endpoint))
	}

	router.POST("/openrtb2/content", wrap(contentEndpoints.NewContentEndpoint(cfg, metricsEngine), metrics.EndpointContent))
	router.POST("/openrtb2/content/batch", wrap(contentEndpoints.NewContentBatchEndpoint(cfg, metricsEngine), metrics.EndpointContentBatch))
	router.GET("/openrtb2/content/contexts", contentEndpoints.NewContentContextsEndpoint(metricsEngine))
	router.HandlerFunc("GET", "/status", endpoints.NewStatusEndpoint(cfg.StatusResponse))
}

func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", aspects.RequestIDHeader}})
	return c.Handler(handler)
}
