package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"ulp_backend/internal/models"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться - это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила, основанные на 'statuses.go'
	mustRegister("is-degree", validateDegree)
	mustRegister("is-lead-status", validateLeadStatus)
	mustRegister("is-event-type", validateEventType)
	mustRegister("is-log-type", validateLogType)
}

// --- Функции валидации ---

func validateDegree(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	switch models.Degree(value) {
	case models.Degree10th, models.Degree12th, models.DegreeGrad, models.DegreePostGrad:
		return true
	default:
		return false
	}
}

func validateLeadStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.LeadStatus(value) {
	case models.LeadStatusPending, models.LeadStatusDone:
		return true
	default:
		return false
	}
}

func validateEventType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.EventType(value) {
	case models.EventTypePageView, models.EventTypeClick, models.EventTypeFormSubmit, models.EventTypeCustom:
		return true
	default:
		return false
	}
}

func validateLogType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.LogType(value) {
	case models.LogTypeUser, models.LogTypeStaff:
		return true
	default:
		return false
	}
}
