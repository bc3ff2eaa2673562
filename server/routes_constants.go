package server

// Route path constants
const (
	RouteToken = "/token"

	// Reports
	RouteReportStudents = "/report/students"
	RouteReportTeachers = "/report/teachers"
	RouteReportPayments = "/report/payments"

	// Predictions
	RoutePredictStudent = "/predict/student"
	RoutePredictRevenue = "/predict/revenue"

	RouteVoiceInterpret = "/voice/interpret"

	RouteHealth = "/health"
)
