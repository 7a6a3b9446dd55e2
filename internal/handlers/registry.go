package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler  *AuthHandler
	LeadHandler  *LeadHandler
	EventHandler *EventHandler
	LogHandler   *LogHandler
}
