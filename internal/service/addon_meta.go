package service

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/salesreport-next/internal/models"
)

// 加购选项值形如 "product-75685" 或 "product-75685-1"
var addonProductPattern = regexp.MustCompile(`^product-(\d+)(?:-\d+)?$`)

// 订单项元数据中保存加购选项的键
const metaKeyAddonSelections = "_addon_selections"

// extractAddonProductIDs 递归遍历订单项元数据，收集加购商品 ID。
// 按首次出现顺序去重，仅匹配叶子字符串值。
func extractAddonProductIDs(meta models.JSON) []uint {
	if meta == nil {
		return nil
	}
	raw, ok := meta[metaKeyAddonSelections]
	if !ok {
		return nil
	}

	var ids []uint
	seen := make(map[uint]bool)
	walkAddonValue(raw, func(value string) {
		matches := addonProductPattern.FindStringSubmatch(value)
		if matches == nil {
			return
		}
		parsed, err := strconv.ParseUint(matches[1], 10, 32)
		if err != nil || parsed == 0 {
			return
		}
		id := uint(parsed)
		if seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	})
	return ids
}

// walkAddonValue 类型化递归遍历 JSON 树，对每个字符串叶子调用 visit。
// map 按键排序遍历，保证结果顺序稳定。
func walkAddonValue(value interface{}, visit func(string)) {
	switch v := value.(type) {
	case string:
		visit(v)
	case []interface{}:
		for _, item := range v {
			walkAddonValue(item, visit)
		}
	case map[string]interface{}:
		walkAddonMap(v, visit)
	case models.JSON:
		walkAddonMap(v, visit)
	}
}

func walkAddonMap(m map[string]interface{}, visit func(string)) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		walkAddonValue(m[key], visit)
	}
}
