package models

type Permission string

const (
	PermRequestCreate Permission = "finance_request:create"
	PermRequestEdit   Permission = "finance_request:edit"
	PermRequestView   Permission = "finance_request:view"
	PermRequestDelete Permission = "finance_request:delete"
	PermRequestSubmit Permission = "finance_request:submit"

	PermApprovalAct      Permission = "approval:act"
	PermApprovalOverride Permission = "approval:override"

	PermReportView   Permission = "report:view"
	PermReportExport Permission = "report:export"

	PermUserManage Permission = "user:manage"
)

// PermissionCategory is the part before the colon; "category:*" grants every
// permission of that category.
func (p Permission) PermissionCategory() string {
	for i := 0; i < len(p); i++ {
		if p[i] == ':' {
			return string(p[:i])
		}
	}
	return string(p)
}
