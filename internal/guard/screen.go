package guard

import "locatrack.io/locatrack/internal/backend"

// Screen is a navigable view of the application.
type Screen string

const (
	ScreenDashboard    Screen = "dashboard"
	ScreenFleet        Screen = "fleet"
	ScreenClients      Screen = "clients"
	ScreenReservations Screen = "reservations"
	ScreenContracts    Screen = "contracts"
	ScreenPayments     Screen = "payments"
	ScreenMaintenance  Screen = "maintenance"
	ScreenInfractions  Screen = "infractions"
	ScreenReports      Screen = "reports"
	ScreenGPS          Screen = "gps"
	ScreenMessages     Screen = "messages"
	ScreenEmployees    Screen = "employees"
	ScreenSettings     Screen = "settings"
	ScreenAdmin        Screen = "admin"
)

// Default landing paths per outcome.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

// allowedRoles maps each screen to the closed set of roles that may open
// it. The superadmin lives exclusively in the admin console; everything
// tenant-facing belongs to locateurs and, for day-to-day screens, their
// employees.
var allowedRoles = map[Screen][]backend.Role{
	ScreenDashboard:    {backend.RoleLocateur, backend.RoleEmployee},
	ScreenFleet:        {backend.RoleLocateur, backend.RoleEmployee},
	ScreenClients:      {backend.RoleLocateur, backend.RoleEmployee},
	ScreenReservations: {backend.RoleLocateur, backend.RoleEmployee},
	ScreenContracts:    {backend.RoleLocateur, backend.RoleEmployee},
	ScreenPayments:     {backend.RoleLocateur, backend.RoleEmployee},
	ScreenMaintenance:  {backend.RoleLocateur, backend.RoleEmployee},
	ScreenInfractions:  {backend.RoleLocateur, backend.RoleEmployee},
	ScreenReports:      {backend.RoleLocateur},
	ScreenGPS:          {backend.RoleLocateur, backend.RoleEmployee},
	ScreenMessages:     {backend.RoleLocateur, backend.RoleEmployee},
	ScreenEmployees:    {backend.RoleLocateur},
	ScreenSettings:     {backend.RoleLocateur},
	ScreenAdmin:        {backend.RoleSuperAdmin},
}

// Allows reports whether the role may open the screen. Unknown screens
// allow nobody.
func Allows(screen Screen, role backend.Role) bool {
	for _, allowed := range allowedRoles[screen] {
		if allowed == role {
			return true
		}
	}

	return false
}

// Landing returns the default landing path for a role.
func Landing(role backend.Role) string {
	if role == backend.RoleSuperAdmin {
		return PathAdmin
	}

	return PathDashboard
}
