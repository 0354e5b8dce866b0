package synth

import "strings"

// nonVegIngredients 葷食詞庫，任一食材命中即視為非素食
var nonVegIngredients = []string{
	"chicken", "beef", "pork", "lamb", "mutton", "veal",
	"fish", "salmon", "tuna", "cod", "anchovy", "anchovies",
	"shrimp", "prawn", "crab", "lobster", "squid", "octopus",
	"bacon", "ham", "sausage", "pepperoni", "salami", "prosciutto",
	"turkey", "duck", "goose", "meat", "steak", "ribs",
	"gelatin", "lard", "fish sauce", "oyster sauce", "worcestershire",
}

// IsVegetarian 判斷食材清單是否為素食
// 素食標記一律由本地判定，不採信模型輸出
func IsVegetarian(ingredients []string) bool {
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for _, nonVeg := range nonVegIngredients {
			if strings.Contains(lower, nonVeg) {
				return false
			}
		}
	}
	return true
}
