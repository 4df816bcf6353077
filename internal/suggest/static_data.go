// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package suggest

// DefaultStaticData returns the built-in reference lists. These cover the
// well-known entities that should resolve instantly while typing, before
// any external lookup is attempted. Dishes and ingredients are the long
// tail of the culinary domain, so their lists stay deliberately small and
// external enhancement fills the gap.
func DefaultStaticData() StaticData {
	return StaticData{
		Chefs: []string{
			"Gordon Ramsay",
			"Julia Child",
			"Anthony Bourdain",
			"Marco Pierre White",
			"Alice Waters",
			"José Andrés",
			"Massimo Bottura",
			"Clare Smyth",
			"Heston Blumenthal",
			"Thomas Keller",
			"Anne-Sophie Pic",
			"Ferran Adrià",
			"René Redzepi",
			"Nigella Lawson",
			"Yotam Ottolenghi",
			"Dominique Crenn",
			"Alain Ducasse",
			"Joël Robuchon",
			"Ina Garten",
			"Madhur Jaffrey",
		},
		Cuisines: []string{
			"Italian",
			"French",
			"Japanese",
			"Chinese",
			"Indian",
			"Thai",
			"Mexican",
			"Greek",
			"Spanish",
			"Turkish",
			"Lebanese",
			"Moroccan",
			"Vietnamese",
			"Korean",
			"Peruvian",
			"Ethiopian",
			"Jamaican",
			"Cajun",
			"Basque",
			"Sichuan",
			"Persian",
			"Georgian",
		},
		Dishes: []string{
			"Pizza margherita",
			"Pad thai",
			"Chicken tikka masala",
			"Ratatouille",
			"Paella",
			"Ramen",
			"Rendang",
			"Pho",
			"Moussaka",
			"Bouillabaisse",
			"Jerk chicken",
			"Goulash",
			"Risotto",
			"Tiramisu",
			"Bibimbap",
			"Ceviche",
			"Falafel",
			"Shakshuka",
			"Tacos al pastor",
			"Gumbo",
			"Jambalaya",
			"Okonomiyaki",
		},
		Ingredients: []string{
			"Saffron",
			"Basil",
			"Cumin",
			"Turmeric",
			"Paprika",
			"Coriander",
			"Lemongrass",
			"Ginger",
			"Cardamom",
			"Miso",
			"Tahini",
			"Sumac",
			"Za'atar",
			"Harissa",
			"Gochujang",
			"Black pepper",
			"Oregano",
			"Thyme",
			"Rosemary",
			"Galangal",
		},
		Restaurants: []Restaurant{
			{Name: "Noma", City: "Copenhagen"},
			{Name: "The French Laundry", City: "Yountville"},
			{Name: "El Celler de Can Roca", City: "Girona"},
			{Name: "Osteria Francescana", City: "Modena"},
			{Name: "Eleven Madison Park", City: "New York"},
			{Name: "Le Bernardin", City: "New York"},
			{Name: "Mirazur", City: "Menton"},
			{Name: "Central", City: "Lima"},
			{Name: "Alinea", City: "Chicago"},
			{Name: "The Fat Duck", City: "Bray"},
		},
	}
}
