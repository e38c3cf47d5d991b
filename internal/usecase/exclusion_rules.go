package usecase

// ExcludedCategoryCodes are the leading two digits of food codes whose whole category is dropped.
var ExcludedCategoryCodes = map[int]string{
	13: "Milk desserts and sauces",
	28: "Frozen meals, soups, gravies",
	32: "Egg mixture",
	33: "Egg substitutes",
	51: "Yeast breads, rolls",
	52: "Quick breads",
	53: "Cakes, cookies, pies, pastries, bars",
	54: "Crackers, snack products",
	55: "Pancakes, waffles, French toast, other grain products",
	58: "Grain mixtures, frozen meals, soups",
	59: "Meat substitutes",
	67: "Fruits and juices baby food",
	77: "Vegetables with meat, poultry, fish",
	78: "Mixtures mostly vegetables without meat, poultry, fish",
	83: "Salad dressings",
	89: "'For use' with a sandwich or vegetable",
	95: "Formulated nutrition beverages, energy drinks, sports drinks",
}

// CategoryDescriptionTokens drop a record whose WWEIA category description contains any of
// them. Matching is case-sensitive substring matching, so "Fried" and "fried" are distinct.
var CategoryDescriptionTokens = []string{
	"substitutes", "sauces", "desserts", "Smoothies", "Formula", "Flavored", "shakes", "Pizza",
	"sandwich", "Baby", "Mix", "mix", "patties", "dinner", "sauce", "Burger", "Soup", "Processed",
	"Fried", "chip", "condiment", "combination", "juice", "Margarine", "dressing", "topping",
	"sorbet", "Candy", "soft drink", "diet", "fried", "baked", "Pudding", "Liquor", "Wine", "Beer",
	"Soft drinks", "Pickle", "pickle", "dish", "Dried fruit", "Pasta", "Cracker", "cured", "Sausages",
	"Coleslaw", "Fruit drinks", "creamed", "Oatmeal", "cereal", "Frankfurter",
}

// MainDescriptionTokens drop a record whose main food description contains any of them.
// Some entries are broad ("and", "with") or repeated; the list is kept as is because
// it defines the reference cleaned dataset.
var MainDescriptionTokens = []string{
	"reconstituted", "evaporated", "flavor", "parfait", "imitation", "topping", "sugar free",
	"beverage", "blend", "lowfat", "reduced", "fat free", "low fat", "light", "spread", "dessert",
	"processed", "with", "pressurized", "Imitation", "pickled", "baked", "nonfat", "NS as to",
	"roasted", "rotisserie", "stewed", "fried", "grilled", "Spam", "packaged", "cooked", "steamed",
	"smoked", "cooked", "mixed", "fat added", "pie", "no meat", "stew", "pasta", "Pasta", "lower",
	"fortified", "juice", "syrup", "Cereal", "Cream of", "Sauce", "ingredient", "enhanced", "diet",
	"Wine", "drink", "mix", "instant", "Iced", "Cappuccino", "cafe ", "sauce", "tub", "drippings",
	"Fritter", "Stuffed ", "creamed", "bottled", "bubble", "substitute", "Latte", "Mocha", "brew",
	"powder", "macchiato", "Cuban", "Sugar, cinnamon", "confectioner", "Sun-dried", "Mix",
	"Table fat, NFS", "Honey butter", "chocolate", "bread", "boil", "candied", "Dal", "jelly",
	"Congee", "cocktail", "Bacon bits", "restaurant", "frank", "Wasabi peas", "Shrimp scampi",
	"vegetarian", "baked", "Baked", "Fried", "nugget", "Duck, pressed, Chinese", "pot roast",
	"coated", "cracklings", "saute", "other sources", "Soy nut", "NFS", "and", "sandwich",
	"maraschino", "Tahini", " butter", " salted", "canned", "decaffeinated", "from frozen",
	"casserole", "Liver, paste or pate", "Pork skin rinds", "patty", "Cream, whipped", "Fish, stick",
	"white only", "yolk only", "Almond paste", "salad", "Broccoli raab", "lactose free", "Fufu",
	", fruit",
}
