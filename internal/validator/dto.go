package validator

// TeacherRegisterRequest registers a new teacher account, gated by the shared
// admin code.
type TeacherRegisterRequest struct {
	Username   string `json:"username" validate:"required,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
	Name       string `json:"name" validate:"required,max=100"`
	Department string `json:"department" validate:"required,max=100"`
	Code       string `json:"code" validate:"required"`
}

// LoginRequest covers both teacher and student credential posts.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StudentCreateRequest adds a roster row. Department is never client-supplied;
// it is forced to the creating teacher's department.
type StudentCreateRequest struct {
	RollNo   string `json:"roll_no" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Course   string `json:"course" validate:"omitempty,max=100"`
	Semester *int   `json:"semester" validate:"omitempty,min=1,max=12"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// StudentUpdateRequest fully replaces the editable fields (last-write-wins,
// no partial patch semantics).
type StudentUpdateRequest struct {
	RollNo   string `json:"roll_no" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Course   string `json:"course" validate:"omitempty,max=100"`
	Semester *int   `json:"semester" validate:"omitempty,min=1,max=12"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// SetStudentLoginRequest provisions or overwrites a student's self-service
// credentials.
type SetStudentLoginRequest struct {
	StudentUsername string `json:"student_username" validate:"required,max=100"`
	StudentPassword string `json:"student_password" validate:"required,min=6,max=128"`
}

// SaveAttendanceRequest records one day's attendance for the scoped students.
// PresentIDs is the checkbox multi-select: ids present that day; everyone else
// in scope is marked Absent.
type SaveAttendanceRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Course     string `json:"course" validate:"omitempty,max=100"`
	PresentIDs []uint `json:"present_ids"`
}
