package domain

import "fmt"

// Role роль пользователя в маркетплейсе
// Закрытое множество: проверки ролей идут через методы, а не сравнение строк
type Role string

const (
	RoleLearner    Role = "learner"
	RoleInstructor Role = "instructor"
	RoleAcademy    Role = "academy"
)

// ParseRole валидирует и конвертирует строку в Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLearner, RoleInstructor, RoleAcademy:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown user role: %q", s)
	}
}

// CanCreateBookings returns true if the role is allowed to book lessons
func (r Role) CanCreateBookings() bool {
	return r == RoleLearner
}

// IsInstructor returns true for the instructor role
func (r Role) IsInstructor() bool {
	return r == RoleInstructor
}
