package record

import (
	"strings"

	"vuadocau-analyzer/internal/types"
)

// Classify maps a product name to its category. Rules are checked in a
// fixed order and the first match wins, so "cần câu tay máy" is still a
// handheld rod.
func Classify(name string) types.ProductType {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "cần câu tay") || strings.Contains(n, "can cau tay"):
		return types.TypeRodHandheld
	case strings.Contains(n, "cần câu") && strings.Contains(n, "máy"):
		return types.TypeRodReel
	case strings.Contains(n, "máy câu ngang"):
		return types.TypeReelHorizontal
	case strings.Contains(n, "máy câu đứng"):
		return types.TypeReelVertical
	case strings.Contains(n, "mồi") || strings.Contains(n, "lure"):
		return types.TypeLure
	case strings.Contains(n, "phao"):
		return types.TypeFloat
	case strings.Contains(n, "dây") || strings.Contains(n, "cước"):
		return types.TypeLine
	case strings.Contains(n, "lưỡi"):
		return types.TypeHook
	default:
		return types.TypeOther
	}
}
