package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-school-insights/auth"
	"github.com/jrsteele09/go-school-insights/datasets"
	"github.com/jrsteele09/go-school-insights/intent"
	"github.com/jrsteele09/go-school-insights/internal/config"
	"github.com/jrsteele09/go-school-insights/prediction"
)

// Authenticator logs users in and resolves bearer tokens.
type Authenticator interface {
	Login(username, password string) (*auth.TokenResponse, error)
	Authenticate(rawToken string) (string, error)
}

type IntentClassifier interface {
	Classify(text string) intent.Intent
}

// Services are the components the gateway dispatches to.
type Services struct {
	Auth      Authenticator
	Reports   datasets.Reporter
	Predictor prediction.Predictor
	Intents   IntentClassifier
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	logger   zerolog.Logger
	services Services
}

func New(config config.Config, logger zerolog.Logger, services Services) (*Server, error) {
	switch {
	case services.Auth == nil:
		return nil, fmt.Errorf("[Server New] auth service is required")
	case services.Reports == nil:
		return nil, fmt.Errorf("[Server New] report store is required")
	case services.Predictor == nil:
		return nil, fmt.Errorf("[Server New] predictor is required")
	case services.Intents == nil:
		return nil, fmt.Errorf("[Server New] intent classifier is required")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		logger:   logger,
		services: services,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	s.logger.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}
