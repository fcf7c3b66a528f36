package util

import "strconv"

// Paginate 页码从 1 开始，返回 limit/offset
func Paginate(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}
	return perPage, (page - 1) * perPage
}

// TotalPages 总页数，至少为 1
func TotalPages(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// StrSliceToUInt64Slice 字符串 id 列表转数字，遇到非法值返回错误
func StrSliceToUInt64Slice(list []string) ([]uint64, error) {
	res := make([]uint64, 0, len(list))
	for _, s := range list {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}
