package service

import "strings"

// arabicCountryNames 两位国家码到阿拉伯语国家名的映射
var arabicCountryNames = map[string]string{
	"SA": "المملكة العربية السعودية",
	"AE": "الإمارات العربية المتحدة",
	"KW": "الكويت",
	"QA": "قطر",
	"BH": "البحرين",
	"OM": "عمان",
	"YE": "اليمن",
	"IQ": "العراق",
	"SY": "سوريا",
	"JO": "الأردن",
	"LB": "لبنان",
	"PS": "فلسطين",
	"EG": "مصر",
	"LY": "ليبيا",
	"TN": "تونس",
	"DZ": "الجزائر",
	"MA": "المغرب",
	"SD": "السودان",
	"SO": "الصومال",
	"DJ": "جيبوتي",
	"MR": "موريتانيا",
	"US": "الولايات المتحدة",
	"GB": "المملكة المتحدة",
	"FR": "فرنسا",
	"DE": "ألمانيا",
	"IT": "إيطاليا",
	"ES": "إسبانيا",
	"NL": "هولندا",
	"BE": "بلجيكا",
	"CH": "سويسرا",
	"AT": "النمسا",
	"SE": "السويد",
	"NO": "النرويج",
	"DK": "الدنمارك",
	"FI": "فنلندا",
	"PL": "بولندا",
	"GR": "اليونان",
	"PT": "البرتغال",
	"IE": "أيرلندا",
	"CA": "كندا",
	"AU": "أستراليا",
	"NZ": "نيوزيلندا",
	"JP": "اليابان",
	"CN": "الصين",
	"IN": "الهند",
	"PK": "باكستان",
	"BD": "بنغلاديش",
	"TR": "تركيا",
	"IR": "إيران",
	"AF": "أفغانستان",
	"ID": "إندونيسيا",
	"MY": "ماليزيا",
	"SG": "سنغافورة",
	"TH": "تايلاند",
	"VN": "فيتنام",
	"PH": "الفلبين",
	"KR": "كوريا الجنوبية",
	"BR": "البرازيل",
	"MX": "المكسيك",
	"AR": "الأرجنتين",
	"CL": "تشيلي",
	"CO": "كولومبيا",
	"PE": "بيرو",
	"VE": "فنزويلا",
	"ZA": "جنوب أفريقيا",
	"NG": "نيجيريا",
	"KE": "كينيا",
	"ET": "إثيوبيا",
	"GH": "غانا",
	"RU": "روسيا",
	"UA": "أوكرانيا",
	"IL": "إسرائيل",
}

// ArabicCountryName 将两位国家码转换为阿拉伯语国家名，未知码原样返回，空值返回空串
func ArabicCountryName(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return ""
	}
	if name, ok := arabicCountryNames[code]; ok {
		return name
	}
	return code
}

// isLegacyCountryCode 判断存量行中的国家值是否仍是两位大写国家码
func isLegacyCountryCode(value string) bool {
	if len(value) != 2 {
		return false
	}
	for _, c := range value {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// NormalizeCountryValue 读取侧兼容：存量两位码转换为国家名，其余保持原值
func NormalizeCountryValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if isLegacyCountryCode(trimmed) {
		return ArabicCountryName(trimmed)
	}
	return trimmed
}
