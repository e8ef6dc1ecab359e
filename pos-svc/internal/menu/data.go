package menu

import (
	"fmt"

	"pizzaria-veneza/pos-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// GeneralPancakeID is the pancake that takes a pizza flavor.
const GeneralPancakeID = "panqueca-01"

// DelValleID is the canned juice that takes a flavor.
const DelValleID = "sucolata-02"

func price(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

func pizza(id, name, ingredients string, small, medium, large float64) Pizza {
	return Pizza{
		ID:          id,
		Name:        name,
		Ingredients: ingredients,
		Prices: map[domain.Size]decimal.Decimal{
			domain.SizeSmall:  price(small),
			domain.SizeMedium: price(medium),
			domain.SizeLarge:  price(large),
		},
	}
}

func option(name string, surcharge float64) domain.Option {
	return domain.Option{Name: name, Surcharge: price(surcharge)}
}

func fixed(prefix string, entries ...FixedItem) []FixedItem {
	for i := range entries {
		entries[i].ID = fmt.Sprintf("%s-%02d", prefix, i+1)
	}
	return entries
}

func item(name string, value float64) FixedItem {
	return FixedItem{Name: name, Price: price(value)}
}

// Default returns the Pizzaria Veneza menu.
func Default() *Catalog {
	naturalJuice := 11.00
	var juices []FixedItem
	for _, flavor := range []string{"Abacaxi", "Abacaxi com Hortelã", "Frutas Vermelhas", "Laranja", "Limonada", "Maracujá", "Morango"} {
		juices = append(juices, item("Suco de "+flavor, naturalJuice))
	}

	delValle := item("Del Valle (Pêssego, Uva, Goiaba, Manga)", 6.00)
	delValle.Flavors = []string{"Pêssego", "Uva", "Goiaba", "Manga"}

	generalPancake := item("Sabores de Pizza (Geral)", 20.00)
	generalPancake.PizzaFlavored = true

	return New(Catalog{
		Establishment: "Pizzaria Veneza",
		Categories: []Category{
			{
				Name: "Pizzas Salgadas",
				Pizzas: []Pizza{
					pizza("01", "Presunto", "molho, presunto, mussarela, tomate e orégano", 57, 63, 69),
					pizza("02", "Portuguesa", "molho, presunto, ervilha, calabresa, mussarela, ovo, cebola, bacon e orégano", 61, 67, 75),
					pizza("03", "Moda da Casa", "molho, presunto, atum, palmito, mussarela, tomate, ovo, bacon e orégano", 61, 67, 75),
					pizza("04", "Moda do Chefe", "molho, presunto, ervilha, palmito, champignon, mussarela, ovo, cebola, bacon e orégano", 61, 67, 75),
					pizza("05", "Mussarela", "molho, mussarela e orégano", 57, 63, 69),
					pizza("06", "Marguerita", "molho, mussarela, manjericão, parmesão e orégano", 57, 63, 69),
					pizza("07", "3 Queijos", "molho, provolone, mussarela, parmesão e orégano", 59, 65, 73),
					pizza("08", "4 Queijos", "molho, provolone, catupiry, ricota, mussarela e orégano", 61, 67, 75),
					pizza("09", "5 Queijos", "molho, catupiry, provolone, ricota, mussarela, parmesão e orégano", 63, 69, 77),
					pizza("10", "Frango Catupiry", "molho, frango, milho, catupiry, mussarela e orégano", 57, 63, 69),
					pizza("11", "Frango com cheddar", "molho, frango, milho, cheddar, mussarela e orégano", 63, 69, 77),
					pizza("12", "Mineira", "molho, frango, milho, catupiry, mussarela, bacon e orégano", 61, 67, 75),
					pizza("13", "Veneza", "molho, frango, milho, catupiry, mussarela, tomate, batata palha e orégano", 61, 67, 75),
					pizza("14", "Calabresa", "molho, mussarela, calabresa, cebola e orégano", 57, 63, 69),
					pizza("15", "Pomodoro", "molho, calabresa, catupiry, mussarela, bacon e orégano", 61, 67, 75),
					pizza("16", "Calabresa Picante", "molho, calabresa, parmesão, pimentão, cebola, alho frito e orégano", 61, 67, 75),
					pizza("17", "Brócolis", "molho, brócolis, mussarela, bacon, alho frito e orégano", 59, 65, 73),
					pizza("18", "Alho poró", "molho, alho poró, mussarela, alho frito, tomate e orégano", 59, 65, 73),
					pizza("19", "Rúcula", "molho, mussarela, rúcula, tomate seco e orégano", 61, 67, 75),
					pizza("20", "Palmito", "molho, palmito, mussarela e orégano", 59, 65, 73),
					pizza("21", "Siciliana", "molho, champignon, mussarela, bacon e orégano", 60, 67, 75),
					pizza("22", "A moda da Veneza", "molho, brócolis, frango, catupiry original, champignon, mussarela, tomate, alho frito e orégano", 65, 73, 81),
					pizza("23", "Atum", "molho, mussarela, atum, cebola e orégano", 63, 69, 75),
					pizza("24", "Canadense", "molho, lombo, catupiry, milho, mussarela e orégano", 61, 67, 73),
					pizza("25", "Pirrio", "molho, lombo, catupiry, milho, ervilha, palmito, mussarela e orégano", 63, 69, 75),
					pizza("26", "Strogonoff de Frango", "peito de frango, mussarela, batata palha e orégano", 69, 75, 81),
					pizza("27", "Strogonoff de Carne", "filé mignon, mussarela, batata palha e orégano", 73, 79, 85),
					pizza("28", "Bacon", "molho, bacon, mussarela, cebola e orégano", 61, 67, 73),
				},
			},
			{
				Name: "Pizzas Doces",
				Pizzas: []Pizza{
					pizza("29", "Brigadeiro", "brigadeiro e granulado", 55, 60, 67),
					pizza("30", "Chocolate com Morango e confete", "base de chocolate, morango e confete", 55, 60, 67),
					pizza("31", "Beijinho", "beijinho e coco ralado", 54, 59, 65),
					pizza("32", "Banana com queijo e canela", "banana caramelizada, mussarela e canela", 54, 59, 65),
					pizza("33", "Romeu e Julieta", "goiabada e queijo", 54, 59, 65),
					pizza("34", "Chocolate Branco com abacaxi e raspas de limão", "chocolate branco, abacaxi e raspa de limão", 57, 62, 69),
					pizza("35", "Leite Ninho com Morango", "leite ninho e morango", 57, 62, 69),
					pizza("36", "Prestígio", "chocolate e coco ralado", 55, 60, 66),
				},
			},
		},
		Crusts: []domain.Option{
			option("Comum", 0),
			option("Catupiry", 7),
			option("Cheddar", 9),
			option("Catupiry Original", 11),
			option("Mussarela", 11),
			option("Chocolate", 11),
		},
		AddOns: []domain.Option{
			option("Catupiry Original", 8),
			option("Tomate Seco", 8),
			option("Bacon", 6),
			option("Cheddar", 6),
			option("Palmito", 6),
			option("Champignon", 6),
			option("Batata Palha", 5),
			option("Brócolis", 4),
			option("Milho", 3),
		},
		Pancakes: fixed("panqueca",
			generalPancake,
			item("Atum", 21),
			item("Strogonoff de Frango", 23),
			item("Strogonoff de Carne", 25),
		),
		Drinks: []DrinkGroup{
			{Name: "Sucos Naturais", Items: fixed("suco", juices...)},
			{Name: "Sucos Especiais", Items: fixed("sucoesp",
				item("Suco de Laranja com Abacaxi", 13),
				item("Suco de Laranja com Acerola", 13),
				item("Suco de Laranja com Morango", 13),
			)},
			{Name: "Refrigerantes", Items: fixed("refri",
				item("Coca Cola / Zero / Fanta / Sprite 2L", 15),
				item("Coca Cola / Zero / Fanta / Sprite 1L", 12),
				item("Coca Cola / Zero / Fanta / Sprite 600ml", 9),
				item("Coca Cola / Zero / Fanta / Sprite Lata", 6.5),
				item("Kuat 2L", 15),
				item("Kuat 600ml", 9),
				item("Kuat Lata", 6.5),
				item("Schweppes Citrus (Lata)", 6.5),
				item("Energético Monster (473ml)", 13),
			)},
			{Name: "Água", Items: fixed("agua",
				item("Água Sem gás (500ml)", 4),
				item("Água Com gás (500ml)", 4.5),
				item("Água Com gás sabor limão (510ml)", 5),
			)},
			{Name: "Cervejas", Items: fixed("cerveja",
				item("Skol / Brahma (600ml)", 13),
				item("Skol / Brahma (Lata 350ml)", 6),
				item("Heineken (600ml)", 18),
				item("Heineken Long Neck (330ml)", 12),
				item("Original / Amstel / Eisenbahn (600ml)", 16),
			)},
			{Name: "Sucos em Lata", Items: fixed("sucolata",
				item("Ice Tea Pêssego / Limão (450ml)", 6),
				delValle,
			)},
		},
		Caipirinha: CaipirinhaMenu{
			Price:  price(30),
			Bases:  []string{"Vodka", "Pinga", "Rum", "Saquê", "Vinho"},
			Fruits: []string{"Morango", "Maracujá", "Abacaxi", "Acerola", "Limão", "Frutas Vermelhas"},
		},
	})
}
