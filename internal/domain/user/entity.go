package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"       // Clinic administrator - full access
	RoleManajer     Role = "manajer"     // Manager - oversight and reports
	RoleBendahara   Role = "bendahara"   // Treasurer
	RoleVerifikator Role = "verifikator" // Validation officer
	RolePetugas     Role = "petugas"     // Front-desk staff
	RoleParamedis   Role = "paramedis"   // Paramedic
	RoleDokter      Role = "dokter"      // Doctor
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleManajer),
	string(RoleBendahara),
	string(RoleVerifikator),
	string(RolePetugas),
	string(RoleParamedis),
	string(RoleDokter),
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user is a clinic administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if the user is a manager or administrator
func (u *User) IsManager() bool {
	return u.Role == RoleManajer || u.Role == RoleAdmin
}
