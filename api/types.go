package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	experienceHandler experienceHandler
	skillHandler      skillHandler
	authHandler       authHandler
	leetCodeHandler   leetCodeHandler
	contactHandler    contactHandler
	uploadHandler     uploadHandler
	healthHandler     healthHandler
}

// AuthResponse is the body of a successful login or registration
type AuthResponse struct {
	Success bool   `json:"success"`
	User    any    `json:"user"`
	Token   string `json:"token,omitempty"`
}

// UploadResult is the data of a successful image upload
type UploadResult struct {
	URL string `json:"url"`
}

// HealthStatus is the data of GET /healthz
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
