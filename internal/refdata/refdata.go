// Package refdata holds the static reference tables the decoders consume:
// the passport-series region map and the product-group taxonomy. The maps
// are read-only after init.
package refdata

// RegionUnknown is returned for series prefixes not present in the table.
const RegionUnknown = "UNKNOWN"

// regions maps the first two digits of a passport series to the issuing
// region name.
var regions = map[string]string{
	"01": "Алтайский",
	"03": "Краснодарский",
	"04": "Красноярский",
	"05": "Приморский",
	"07": "Ставропольский",
	"08": "Хабаровский",
	"10": "Алтайский",
	"11": "Архангельская",
	"12": "Астраханская",
	"14": "Белгородская",
	"15": "Брянская",
	"17": "Владимирская",
	"18": "Волгоградская",
	"19": "Вологодская",
	"20": "Воронежская",
	"22": "Нижегородская",
	"24": "Ивановская",
	"25": "Иркутская",
	"26": "Ингушетия",
	"27": "Калининградская",
	"28": "Тверская",
	"29": "Калужская",
	"30": "Краснодарский",
	"31": "Краснодарский",
	"32": "Кемеровская",
	"33": "Кировская",
	"34": "Костромская",
	"36": "Самарская",
	"37": "Курганская",
	"38": "Курская",
	"39": "Крым",
	"40": "Санкт-Петербург",
	"41": "Ленинградская",
	"42": "Липецкая",
	"43": "Агинский Бурятский АО",
	"44": "Магаданская",
	"45": "Москва",
	"46": "Московская",
	"47": "Мурманская",
	"48": "Коми",
	"49": "Новгородская",
	"50": "Новосибирская",
	"51": "Приморский",
	"52": "Омская",
	"53": "Оренбургская",
	"54": "Орловская",
	"55": "Ненецкий",
	"56": "Пензенская",
	"57": "Пермский",
	"58": "Псковская",
	"59": "Таймырский",
	"60": "Ростовская",
	"61": "Рязанская",
	"62": "Иркутская",
	"63": "Саратовская",
	"64": "Сахалинская",
	"65": "Свердловская",
	"66": "Смоленская",
	"67": "Тюменская",
	"68": "Тамбовская",
	"69": "Томская",
	"70": "Тульская",
	"71": "Тюменская",
	"73": "Ульяновская",
	"74": "Ямало-Ненецкий",
	"75": "Челябинская",
	"76": "Забайкальский",
	"77": "Чукотский АО",
	"78": "Ярославская",
	"79": "Адыгея",
	"80": "Башкортостан",
	"81": "Бурятия",
	"82": "Дагестан",
	"83": "Кабардино-Балкарская",
	"84": "Алтайский",
	"85": "Калмыкия",
	"86": "Карелия",
	"87": "Коми",
	"88": "Марий Эл",
	"89": "Мордовия",
	"90": "Северная Осетия - Алания",
	"91": "Карачаево-Черкесская",
	"92": "Татарстан",
	"93": "Тыва",
	"94": "Удмуртская",
	"95": "Хакасия",
	"96": "Чеченская",
	"97": "Чувашская республика -",
	"98": "Саха /Якутия/",
	"99": "Еврейская",
}

// Region resolves a 2-character series prefix to a region name.
// Unknown prefixes resolve to RegionUnknown, never an error.
func Region(prefix string) string {
	if name, ok := regions[prefix]; ok {
		return name
	}

	return RegionUnknown
}

// Product codes of the closed classification set.
const (
	ProductCard = "CARD"
	ProductCar  = "CAR"
	ProductPos  = "POS"
	ProductCash = "CASH"

	// ProductUnclassified marks labels outside the taxonomy. It is an
	// explicit in-band value, never a dropped row.
	ProductUnclassified = "NO_CLASSIFICATION"
)

// cardGroup lists the product-group labels that classify as card products.
var cardGroup = map[string]struct{}{
	"НСО":              {},
	"МТС MICRON":       {},
	"МТС Деньги GRACE": {},
	"Кредитная карта в рамках Пассивных продаж GRACE": {},
	"КЗП":                                 {},
	"КЗП GRACE":                           {},
	"МТС Деньги":                          {},
	"Расчетная карта с РО":                {},
	"Расчетные карты VIP/Premium Card GRACE": {},
	"Карта":                               {},
}

// productGroups maps the remaining known free-text labels to product codes.
// Both the default label set and the POST export labels are recognized.
var productGroups = map[string]string{
	"Автокредит":                       ProductCar,
	"CAR - автокредит":                 ProductCar,
	"Целевой потребительский кредит":   ProductPos,
	"POS - кредит":                     ProductPos,
	"Нецелевой потребительский кредит": ProductCash,
	"CASH - кредит":                    ProductCash,
}

// productNames maps product codes to their human-readable names.
var productNames = map[string]string{
	ProductCard: "Карточные продукты",
	ProductCar:  "Автокредит",
	ProductPos:  "Потребительский целевой кредит",
	ProductCash: "Потребительский нецелевой кредит",
}

// ClassifyProduct maps a free-text product-group label to a product code.
// Labels outside the taxonomy map to ProductUnclassified.
func ClassifyProduct(label string) string {
	if _, ok := cardGroup[label]; ok {
		return ProductCard
	}

	if code, ok := productGroups[label]; ok {
		return code
	}

	return ProductUnclassified
}

// ProductName resolves a product code to its display name.
func ProductName(code string) string {
	if name, ok := productNames[code]; ok {
		return name
	}

	return ProductUnclassified
}
