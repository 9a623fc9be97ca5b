package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Permissions is the capability set the server grants a session.
type Permissions struct {
	CanEdit               bool `json:"can_edit"`
	CanDelete             bool `json:"can_delete"`
	CanExport             bool `json:"can_export"`
	CanManageIntegrations bool `json:"can_manage_integrations"`
	CanViewAnalytics      bool `json:"can_view_analytics"`
}

// Session is the resolved role of the current caller. It only gates which
// controls are shown; the server still authorizes every write.
type Session struct {
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
}

// ViewerPermissions is the read-only set used whenever the role cannot be
// established.
func ViewerPermissions() Permissions {
	return Permissions{
		CanEdit:               false,
		CanDelete:             false,
		CanExport:             true,
		CanManageIntegrations: false,
		CanViewAnalytics:      true,
	}
}

// ViewerSession returns the fail-safe session.
func ViewerSession() Session {
	return Session{Role: RoleViewer, Permissions: ViewerPermissions()}
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// CanMutate reports whether any mutation control may be shown.
func (s Session) CanMutate() bool {
	return s.Permissions.CanEdit || s.Permissions.CanDelete
}

// Marker returns the body class that reflects the role, "role-admin" or
// "role-viewer".
func (s Session) Marker() string {
	if s.IsAdmin() {
		return "role-admin"
	}
	return "role-viewer"
}
