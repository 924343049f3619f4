package transform

import "strings"

// Known column-name variants shared by the transforms. The lists mix the
// English and Chinese headers the tool's workbooks actually use.
var (
	// NameColumnNames are employee-name header variants.
	NameColumnNames = []string{"emp_nm", "emp", "employee", "usr_nm", "name", "员工", "员工姓名", "姓名"}

	// IDColumnNames are employee-id header variants.
	IDColumnNames = []string{"emp_id", "employee_id", "usr_id", "id", "员工编号", "工号", "编号"}

	// DateColumnNames are date header variants.
	DateColumnNames = []string{"date", "data_dt", "dt_date", "dt", "datetime", "日期", "时间", "time"}

	// GroupColumnNames are group/team header variants.
	GroupColumnNames = []string{"grp", "group", "team", "组", "小组"}
)

// FindColumn locates the first header matching any candidate name,
// case-insensitively. Candidate order wins over header order.
func FindColumn(headers []string, candidates []string) (int, bool) {
	for _, cand := range candidates {
		for i, h := range headers {
			if strings.EqualFold(h, cand) {
				return i, true
			}
		}
	}
	return 0, false
}
