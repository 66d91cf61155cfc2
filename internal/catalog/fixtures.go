package catalog

// Default returns the reference fixture: three partner stores, one menu per
// supported language shared by every store, and the canned OCR dishes.
func Default() *Catalog {
	c, err := New(defaultStores(), defaultMenus(), defaultOCR())
	if err != nil {
		panic("catalog: invalid default fixture: " + err.Error())
	}
	return c
}

func defaultStores() []Store {
	return []Store{
		{ID: 1, Name: "王阿嬤臭豆腐", PartnerLevel: PartnerA, Address: "台北市信義區信義路五段7號"},
		{ID: 2, Name: "小李牛肉麵", PartnerLevel: PartnerB, Address: "台北市大安區忠孝東路四段1號"},
		{ID: 3, Name: "阿婆滷肉飯", PartnerLevel: PartnerC, Address: "台北市中山區中山北路一段1號"},
	}
}

func defaultMenus() map[string]Menu {
	return map[string]Menu{
		LangZhTW: {
			StoreName: "王阿嬤臭豆腐",
			Items: []MenuItem{
				{ID: 101, Name: "招牌臭豆腐", Description: "外酥內嫩的發酵豆腐，搭配特製泡菜。", PriceSmall: 60},
				{ID: 102, Name: "珍珠奶茶", Description: "經典台灣手搖飲，Q彈珍珠搭配香濃奶茶。", PriceSmall: 50},
				{ID: 103, Name: "滷肉飯", Description: "香濃滷肉配白飯，經典台灣小吃。", PriceSmall: 80},
			},
		},
		LangEnUS: {
			StoreName: "Grandma Wang's Stinky Tofu",
			Items: []MenuItem{
				{ID: 101, Name: "Crispy Stinky Tofu", Description: "Fermented tofu deep-fried to golden perfection.", PriceSmall: 60},
				{ID: 102, Name: "Bubble Milk Tea", Description: "Classic Taiwanese milk tea with tapioca pearls.", PriceSmall: 50},
				{ID: 103, Name: "Braised Pork Rice", Description: "Classic Taiwanese braised pork over rice.", PriceSmall: 80},
			},
		},
		LangJaJP: {
			StoreName: "王おばあちゃんの臭豆腐",
			Items: []MenuItem{
				{ID: 101, Name: "看板臭豆腐", Description: "外はカリカリ、中はふわふわの発酵豆腐。", PriceSmall: 60},
				{ID: 102, Name: "タピオカミルクティー", Description: "もちもちのタピオカと濃厚なミルクティー。", PriceSmall: 50},
				{ID: 103, Name: "ルーローハン", Description: "台湾の定番料理、香ばしい豚肉とご飯。", PriceSmall: 80},
			},
		},
		LangKoKR: {
			StoreName: "왕 할머니의 냄새나는 두부",
			Items: []MenuItem{
				{ID: 101, Name: "시그니처 냄새나는 두부", Description: "바삭하고 부드러운 발효 두부, 특제 김치와 함께.", PriceSmall: 60},
				{ID: 102, Name: "버블 밀크티", Description: "클래식 대만 밀크티, 쫄깃한 타피오카 펄과 함께.", PriceSmall: 50},
				{ID: 103, Name: "루루오판", Description: "대만의 대표 음식, 향긋한 돼지고기와 밥.", PriceSmall: 80},
			},
		},
	}
}

func defaultOCR() map[string][]OCRItem {
	return map[string][]OCRItem{
		LangZhTW: {
			{Name: "牛肉麵", PriceSmall: 150},
			{Name: "排骨飯", PriceSmall: 120},
			{Name: "燙青菜", PriceSmall: 40},
		},
		LangEnUS: {
			{Name: "Beef Noodle Soup", PriceSmall: 150},
			{Name: "Pork Chop Rice", PriceSmall: 120},
			{Name: "Blanched Vegetables", PriceSmall: 40},
		},
		LangJaJP: {
			{Name: "牛肉麺", PriceSmall: 150},
			{Name: "トンカツ丼", PriceSmall: 120},
			{Name: "湯通し野菜", PriceSmall: 40},
		},
		LangKoKR: {
			{Name: "소고기 국수", PriceSmall: 150},
			{Name: "돈까스 덮밥", PriceSmall: 120},
			{Name: "데친 채소", PriceSmall: 40},
		},
	}
}
