package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-school-insights/datasets"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))

	// Protected routes (require a bearer access token)
	s.RegisterRouteHandler("GET "+RouteReportStudents, ChainMiddleware(s.ReportHandler(datasets.TableStudents), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteReportTeachers, ChainMiddleware(s.ReportHandler(datasets.TableTeachers), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteReportPayments, ChainMiddleware(s.ReportHandler(datasets.TablePayments), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RoutePredictStudent, ChainMiddleware(s.PredictDropoutHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RoutePredictRevenue, ChainMiddleware(s.PredictRevenueHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteVoiceInterpret, ChainMiddleware(s.VoiceInterpretHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}

// NotFoundHandler answers unmatched requests with the JSON error body: 405 when
// the path exists under another method, 404 otherwise.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allowed := s.allowedMethods(r.URL.Path); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) allowedMethods(path string) []string {
	var methods []string
	for _, route := range s.routes {
		method, routePath, ok := strings.Cut(route, " ")
		if ok && routePath == path {
			methods = append(methods, method)
		}
	}
	return methods
}
