package models

type TeacherRole string

const (
	RoleTeacher TeacherRole = "teacher"
	RoleAdmin   TeacherRole = "admin"
)

// Teacher is an authoring account. Password is stored and compared as plain
// text.
type Teacher struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password,omitempty" validate:"required"`
	FullName string      `json:"fullName" validate:"required"`
	Role     TeacherRole `json:"role,omitempty" validate:"omitempty,oneof=teacher admin"`
	Class    string      `json:"class,omitempty"`
}

func (t *Teacher) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// Public returns a copy without the password.
func (t Teacher) Public() Teacher {
	t.Password = ""
	return t
}

// AuthSession is returned after a successful teacher login.
type AuthSession struct {
	IsLoggedIn   bool   `json:"isLoggedIn"`
	TeacherName  string `json:"teacherName"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"isAdmin"`
	TeacherClass string `json:"teacherClass,omitempty"`
}
