package srv

import (
	"github.com/mikespook/gorbac/v2"
)

const (
	// 定义角色ID
	RoleCreator = "role-creator"
	RoleMember  = "role-member"

	// 定义权限ID
	PermissionManage = "manage"
	PermissionPost   = "post"
	PermissionView   = "view"
)

func SetupRBACSrv() *RBACSrv {
	rbac := gorbac.New()

	// 创建权限
	pManage := gorbac.NewStdPermission(PermissionManage)
	pPost := gorbac.NewStdPermission(PermissionPost)
	pView := gorbac.NewStdPermission(PermissionView)

	// 创建角色并分配权限
	roleCreator := gorbac.NewStdRole(RoleCreator)
	roleCreator.Assign(pManage)

	roleMember := gorbac.NewStdRole(RoleMember)
	roleMember.Assign(pPost)
	roleMember.Assign(pView)

	rbac.Add(roleCreator)
	rbac.Add(roleMember)

	// 创建者继承成员的权限
	rbac.SetParent(RoleCreator, RoleMember)
	return &RBACSrv{
		rbac: rbac,
	}
}

type RBACSrv struct {
	rbac *gorbac.RBAC
}

// CheckPermission 检查角色是否有某权限
func (a *RBACSrv) CheckPermission(roleID, permissionID string) bool {
	return a.rbac.IsGranted(roleID, gorbac.NewStdPermission(permissionID), nil)
}
