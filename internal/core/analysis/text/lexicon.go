package text

// 食材、烹飪手法與菜系詞庫，來源為英文食譜語料
// 比對時一律先轉小寫

var ingredientDatabase = map[string][]string{
	"proteins": {
		"chicken", "beef", "pork", "lamb", "fish", "salmon", "tuna",
		"shrimp", "prawns", "crab", "lobster", "eggs", "tofu",
		"beans", "lentils", "chickpeas", "turkey", "duck",
	},
	"vegetables": {
		"onion", "onions", "garlic", "tomato", "tomatoes", "carrot", "carrots",
		"potato", "potatoes", "bell pepper", "peppers", "broccoli", "spinach",
		"mushrooms", "celery", "ginger", "lettuce", "cucumber", "zucchini",
		"eggplant", "cauliflower", "cabbage", "corn", "peas",
	},
	"grains": {
		"rice", "pasta", "bread", "flour", "quinoa", "noodles", "wheat",
		"barley", "oats", "couscous", "bulgur",
	},
	"dairy": {
		"milk", "cream", "cheese", "butter", "yogurt", "mozzarella",
		"parmesan", "cheddar", "feta", "ricotta",
	},
	"spices_herbs": {
		"salt", "pepper", "cumin", "turmeric", "paprika", "oregano",
		"basil", "thyme", "rosemary", "cilantro", "parsley", "mint",
		"cinnamon", "cardamom", "cloves", "nutmeg", "garam masala",
	},
	"oils_fats": {
		"olive oil", "vegetable oil", "coconut oil", "butter", "ghee",
	},
	"condiments": {
		"soy sauce", "vinegar", "lemon juice", "lime juice", "honey",
		"sugar", "coconut milk", "tomato sauce", "hot sauce",
	},
}

var cookingMethods = []string{
	"bake", "baking", "baked", "roast", "roasting", "roasted",
	"fry", "frying", "fried", "sauté", "sautéing", "sautéed",
	"boil", "boiling", "boiled", "steam", "steaming", "steamed",
	"grill", "grilling", "grilled", "broil", "broiling", "broiled",
	"simmer", "simmering", "simmered", "braise", "braising", "braised",
	"poach", "poaching", "poached", "stir-fry", "stir-fried",
	"deep-fry", "deep-fried", "pan-fry", "pan-fried", "blend", "mix",
}

var preparationMethods = []string{
	"chop", "chopped", "chopping", "dice", "diced", "dicing",
	"slice", "sliced", "slicing", "mince", "minced", "mincing",
	"grate", "grated", "grating", "blend", "blended", "blending",
	"mix", "mixed", "mixing", "whisk", "whisked", "whisking",
	"fold", "folded", "folding", "knead", "kneaded", "kneading",
	"marinate", "marinated", "marinating", "season", "seasoned", "seasoning",
}

var cuisineKeywords = map[string][]string{
	"Indian": {
		"curry", "masala", "garam masala", "turmeric", "cumin", "coriander",
		"cardamom", "cinnamon", "cloves", "ghee", "basmati", "naan", "tandoori",
		"biryani", "dal", "paneer", "tikka", "vindaloo", "korma",
	},
	"Italian": {
		"pasta", "spaghetti", "linguine", "penne", "lasagna", "risotto",
		"parmesan", "mozzarella", "basil", "oregano", "tomato sauce",
		"olive oil", "pizza", "bruschetta", "marinara", "carbonara", "pesto",
	},
	"Chinese": {
		"soy sauce", "ginger", "garlic", "scallions", "sesame oil",
		"rice wine", "hoisin sauce", "oyster sauce", "five spice",
		"bok choy", "shiitake", "stir fry", "wok", "noodles",
	},
	"Mexican": {
		"chili", "jalapeño", "cilantro", "lime", "cumin", "paprika",
		"avocado", "beans", "corn", "tortilla", "salsa", "guacamole",
		"enchilada", "quesadilla", "taco", "burrito",
	},
	"Thai": {
		"coconut milk", "lemongrass", "thai basil", "fish sauce",
		"lime leaves", "galangal", "pad thai", "green curry", "red curry",
	},
}

// dietaryKeywords 飲食限制關鍵字，鍵為正規化後的標籤
var dietaryKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "veggie", "no meat", "veg only"},
	"vegan":       {"vegan", "plant based", "plant-based"},
	"gluten_free": {"gluten free", "gluten-free", "no gluten"},
	"dairy_free":  {"dairy free", "dairy-free", "no dairy", "lactose free"},
	"low_carb":    {"low carb", "low-carb", "keto", "ketogenic"},
	"low_fat":     {"low fat", "low-fat"},
	"halal":       {"halal"},
	"kosher":      {"kosher"},
}

// dietaryTagOrder 固定輸出順序，避免 map 迭代順序造成結果抖動
var dietaryTagOrder = []string{
	"vegetarian", "vegan", "gluten_free", "dairy_free",
	"low_carb", "low_fat", "halal", "kosher",
}

// measurementUnits 計量單位，逗號分隔清單中剝除數量後的前導單位
var measurementUnits = map[string]bool{
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "ounce": true, "ounces": true,
	"g": true, "gram": true, "grams": true, "kg": true,
	"ml": true, "l": true, "liter": true,
	"pinch": true, "dash": true,
	"can": true, "cans": true,
	"slice": true, "slices": true,
}

// stopWords 純停用詞，不構成食材
var stopWords = map[string]bool{
	"and": true, "or": true, "with": true, "without": true,
	"the": true, "some": true, "any": true, "etc": true,
}
