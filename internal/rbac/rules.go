package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"superadmin": {
		"*", // everything
	},
	"administrator": {
		"users:list",
		"user:change_password",
	},
	"cmd": {
		"user:change_password",
	},
	"user": {
		"user:change_password",
	},
}
