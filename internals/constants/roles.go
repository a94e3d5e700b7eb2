package constants

import "fmt"

// Role pengguna di aplikasi keuangan RQM
const (
	RoleAdmin  = "ADMIN"
	RoleKomite = "KOMITE"
	RoleSantri = "SANTRI"
	RoleGuru   = "GURU"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyKomiteCanAccess  = "❌ Hanya komite atau admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess   = "❌ Hanya admin atau komite yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorKomite(feature string) string {
	return fmt.Sprintf(ErrOnlyKomiteCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleKomite,
		RoleSantri,
		RoleGuru,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleKomite,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	KomiteOnly = []string{
		RoleKomite,
	}
)
