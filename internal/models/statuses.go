package models

type Degree string
type LeadStatus string
type EventType string
type LogType string

const (
	Degree10th     Degree = "10th"
	Degree12th     Degree = "12th"
	DegreeGrad     Degree = "graduation"
	DegreePostGrad Degree = "post-graduation"

	LeadStatusPending LeadStatus = "pending"
	LeadStatusDone    LeadStatus = "done"

	EventTypePageView   EventType = "pageView"
	EventTypeClick      EventType = "click"
	EventTypeFormSubmit EventType = "formSubmit"
	EventTypeCustom     EventType = "custom"

	LogTypeUser  LogType = "user"
	LogTypeStaff LogType = "staff"
)

// Действия, которые пишет сам бекенд. Поле Log.Action при этом
// свободное - клиент может прислать и свои теги (например phone_click).
const (
	LogActionLogin        = "login"
	LogActionStatusChange = "status_change"
	LogActionNoteAdded    = "note_added"
)

// DegreeRequiresCourse - для высшего образования обязательна специальность
func DegreeRequiresCourse(d Degree) bool {
	return d == DegreeGrad || d == DegreePostGrad
}
