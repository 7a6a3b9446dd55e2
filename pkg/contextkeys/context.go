package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// StaffContextKey - ключ, по которому имя залогиненного сотрудника
// хранится в gin context после проверки сессионного токена
const StaffContextKey = contextKey("staff")

// String отдает ключ в виде строки для c.Get/c.Set
func (k contextKey) String() string {
	return string(k)
}
