package audio

import (
	"regexp"
	"strconv"
	"strings"
)

// 語音偏好抽取：從轉錄文字中找出份量、飲食限制、辣度與烹飪手法

var servingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`for (\d+) people`),
	regexp.MustCompile(`(\d+) servings?`),
	regexp.MustCompile(`serves? (\d+)`),
	regexp.MustCompile(`make it for (\d+)`),
	regexp.MustCompile(`(\d+) portions?`),
	regexp.MustCompile(`(\d+) person`),
}

var dietaryKeywords = []struct {
	tag      string
	keywords []string
}{
	{"vegetarian", []string{"vegetarian", "veggie", "no meat", "veg only"}},
	{"vegan", []string{"vegan", "plant based", "plant-based"}},
	{"gluten_free", []string{"gluten free", "gluten-free", "no gluten"}},
	{"dairy_free", []string{"dairy free", "dairy-free", "no dairy", "lactose free"}},
	{"low_carb", []string{"low carb", "low-carb", "keto", "ketogenic"}},
	{"healthy", []string{"healthy", "nutritious", "good for you"}},
	{"quick", []string{"quick", "fast", "rapid", "quickly"}},
}

// 辣度比對順序經過安排："not spicy" 要先被 Mild 接走，
// "extra hot" 要先被 Extra Hot 接走，才輪到 Hot 的 "hot"/"spicy"
var spiceLevels = []struct {
	level    string
	keywords []string
}{
	{"Mild", []string{"mild", "not spicy", "no spice", "gentle", "light spice", "less spicy"}},
	{"Medium", []string{"medium", "moderate", "normal spice", "regular spice"}},
	{"Extra Hot", []string{"extra hot", "very hot", "extremely spicy", "super spicy", "really spicy"}},
	{"Hot", []string{"hot", "spicy", "extra spice", "more spicy"}},
}

var cookingMethodKeywords = []struct {
	method   string
	keywords []string
}{
	{"grilled", []string{"grill", "grilled", "barbecue", "bbq"}},
	{"fried", []string{"fry", "fried", "deep fry", "pan fry"}},
	{"baked", []string{"bake", "baked", "oven", "roast"}},
	{"steamed", []string{"steam", "steamed"}},
	{"boiled", []string{"boil", "boiled"}},
	{"sauteed", []string{"saute", "sauteed", "pan cook"}},
	{"stir_fried", []string{"stir fry", "stir-fry", "wok"}},
}

// ExtractKeywords 從轉錄文字抽取偏好關鍵字、份量與辣度
// 份量僅接受 1 到 20 的合理範圍，0 表示未指定
func ExtractKeywords(transcript string) (keywords []string, servingSize int, spiceLevel string) {
	text := strings.ToLower(transcript)
	keywords = []string{}

	// 份量
	for _, pattern := range servingPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err == nil && n >= 1 && n <= 20 {
			servingSize = n
			break
		}
	}

	// 飲食限制與風格偏好
	for _, entry := range dietaryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				keywords = append(keywords, entry.tag)
				break
			}
		}
	}

	// 辣度
	for _, entry := range spiceLevels {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				spiceLevel = entry.level
				break
			}
		}
		if spiceLevel != "" {
			break
		}
	}
	if spiceLevel != "" {
		keywords = append(keywords, strings.ToLower(strings.ReplaceAll(spiceLevel, " ", "_"))+"_spice")
	}

	// 烹飪手法
	for _, entry := range cookingMethodKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				keywords = append(keywords, entry.method)
				break
			}
		}
	}

	return keywords, servingSize, spiceLevel
}
