package domain

// NavItem is a single sidebar entry in the authenticated chrome.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// NavigationFor maps a primary role to its fixed, ordered navigation list.
// Any unrecognised role (including the open-string extensibility case) yields
// an empty list: the chrome renders with no entries rather than erroring.
func NavigationFor(role Role) []NavItem {
	switch role {
	case RoleSystemAdmin:
		return []NavItem{
			{Label: "Dashboard", Path: "/admin/dashboard", Icon: "dashboard"},
			{Label: "Users", Path: "/admin/users", Icon: "users"},
			{Label: "System Config", Path: "/admin/system-config", Icon: "settings"},
			{Label: "Workflow Config", Path: "/admin/workflow-config", Icon: "workflow"},
			{Label: "Publish", Path: "/admin/publish", Icon: "publish"},
			{Label: "Audit Log", Path: "/admin/audit-log", Icon: "audit"},
		}
	case RoleLecturer:
		return []NavItem{
			{Label: "Dashboard", Path: "/lecturer", Icon: "dashboard"},
			{Label: "Create Syllabus", Path: "/lecturer/create", Icon: "create"},
			{Label: "My Syllabi", Path: "/lecturer/syllabi", Icon: "books"},
			{Label: "Notifications", Path: "/lecturer/notifications", Icon: "bell"},
		}
	case RoleHOD:
		return []NavItem{
			{Label: "Dashboard", Path: "/hod", Icon: "dashboard"},
			{Label: "Review Queue", Path: "/hod/review", Icon: "review"},
			{Label: "Compare Versions", Path: "/hod/compare", Icon: "compare"},
			{Label: "Team Review", Path: "/hod/collaborative-review", Icon: "team"},
		}
	case RoleAcademicAffairs:
		return []NavItem{
			{Label: "Dashboard", Path: "/academic-affairs/dashboard", Icon: "dashboard"},
			{Label: "Final Review", Path: "/academic-affairs/review", Icon: "check"},
			{Label: "PLO Management", Path: "/academic-affairs/plo-management", Icon: "target"},
			{Label: "Program Structure", Path: "/academic-affairs/program-structure", Icon: "structure"},
			{Label: "Reports", Path: "/academic-affairs/reports", Icon: "chart"},
		}
	case RolePrincipal:
		return []NavItem{
			{Label: "Dashboard", Path: "/principal/dashboard", Icon: "dashboard"},
			{Label: "Final Approval", Path: "/principal/final-approval", Icon: "check"},
			{Label: "Executive Reports", Path: "/principal/reports", Icon: "chart"},
		}
	case RoleStudent:
		return []NavItem{
			{Label: "Search Courses", Path: "/student/search", Icon: "search"},
			{Label: "Course Catalog", Path: "/student/catalog", Icon: "books"},
			{Label: "AI Summaries", Path: "/student/ai-summary", Icon: "sparkles"},
			{Label: "Subject Tree", Path: "/student/subject-tree", Icon: "tree"},
			{Label: "Feedback", Path: "/student/feedback", Icon: "chat"},
		}
	default:
		return nil
	}
}
