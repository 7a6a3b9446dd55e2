package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService  AuthService
	LeadService  LeadService
	EventService EventService
	LogService   LogService
}
