package constants

// User roles. Role is business-logic input only; it never changes after creation.
const (
	RoleStudent        = "STUDENT"
	RoleLecturer       = "LECTURER"
	RoleAdmin          = "ADMIN"
	RoleHeadDepartment = "HEAD_DEPARTMENT"
	RoleStaff          = "STAFF"
)

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleLecturer,
		RoleAdmin,
		RoleHeadDepartment,
		RoleStaff,
	}

	LecturerAndAbove = []string{
		RoleLecturer,
		RoleAdmin,
	}

	ApproverRoles = []string{
		RoleHeadDepartment,
		RoleAdmin,
	}

	StaffAndAbove = []string{
		RoleStaff,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
