package lexicon

// knownCities covers the destinations the heuristic extractor can
// normalize without asking. Unknown cities are still accepted in good
// faith by the analyzer; this table only controls canonical casing and
// hub detection.
var knownCities = []City{
	{Name: "Paris", Country: "France", Region: "Île-de-France", Hub: true},
	{Name: "Nice", Country: "France", Region: "Côte d'Azur"},
	{Name: "Lyon", Country: "France", Region: "Auvergne-Rhône-Alpes"},
	{Name: "Rome", Country: "Italy", Region: "Lazio", Hub: true},
	{Name: "Florence", Country: "Italy", Region: "Tuscany"},
	{Name: "Venice", Country: "Italy", Region: "Veneto"},
	{Name: "Milan", Country: "Italy", Region: "Lombardy"},
	{Name: "Naples", Country: "Italy", Region: "Campania"},
	{Name: "London", Country: "United Kingdom", Region: "England", Hub: true},
	{Name: "Edinburgh", Country: "United Kingdom", Region: "Scotland"},
	{Name: "Barcelona", Country: "Spain", Region: "Catalonia", Hub: true},
	{Name: "Madrid", Country: "Spain", Region: "Community of Madrid"},
	{Name: "Seville", Country: "Spain", Region: "Andalusia"},
	{Name: "Lisbon", Country: "Portugal", Region: "Lisbon", Hub: true},
	{Name: "Porto", Country: "Portugal", Region: "Norte"},
	{Name: "Amsterdam", Country: "Netherlands", Region: "North Holland", Hub: true},
	{Name: "Berlin", Country: "Germany", Region: "Berlin", Hub: true},
	{Name: "Munich", Country: "Germany", Region: "Bavaria"},
	{Name: "Vienna", Country: "Austria", Region: "Vienna"},
	{Name: "Prague", Country: "Czech Republic", Region: "Bohemia"},
	{Name: "Budapest", Country: "Hungary", Region: "Central Hungary"},
	{Name: "Athens", Country: "Greece", Region: "Attica", Hub: true},
	{Name: "Santorini", Country: "Greece", Region: "Cyclades"},
	{Name: "Istanbul", Country: "Turkey", Region: "Marmara", Hub: true},
	{Name: "Dubai", Country: "United Arab Emirates", Region: "Dubai"},
	{Name: "Tokyo", Country: "Japan", Region: "Kantō", Hub: true},
	{Name: "Kyoto", Country: "Japan", Region: "Kansai"},
	{Name: "Osaka", Country: "Japan", Region: "Kansai"},
	{Name: "Seoul", Country: "South Korea", Region: "Seoul"},
	{Name: "Bangkok", Country: "Thailand", Region: "Central Thailand", Hub: true},
	{Name: "Chiang Mai", Country: "Thailand", Region: "Northern Thailand"},
	{Name: "Hanoi", Country: "Vietnam", Region: "Red River Delta"},
	{Name: "Singapore", Country: "Singapore", Region: "Singapore"},
	{Name: "Sydney", Country: "Australia", Region: "New South Wales", Hub: true},
	{Name: "Melbourne", Country: "Australia", Region: "Victoria"},
	{Name: "New York", Country: "United States", Region: "New York", Hub: true},
	{Name: "San Francisco", Country: "United States", Region: "California"},
	{Name: "Los Angeles", Country: "United States", Region: "California"},
	{Name: "Mexico City", Country: "Mexico", Region: "Valley of Mexico"},
	{Name: "Rio de Janeiro", Country: "Brazil", Region: "Southeast"},
	{Name: "Buenos Aires", Country: "Argentina", Region: "Buenos Aires"},
	{Name: "Cairo", Country: "Egypt", Region: "Greater Cairo"},
	{Name: "Marrakech", Country: "Morocco", Region: "Marrakesh-Safi"},
	{Name: "Cape Town", Country: "South Africa", Region: "Western Cape"},
}

// knownCountries are destinations that always require city
// disambiguation. SuggestedCities are ordered; the first three back the
// clarification question, and comprehensive tours draw from the full
// list.
var knownCountries = []Country{
	{
		Name:            "Italy",
		SuggestedCities: []string{"Rome", "Florence", "Venice", "Milan", "Naples"},
		Regions:         []string{"Tuscany", "Amalfi Coast", "Lake Como"},
	},
	{
		Name:            "France",
		SuggestedCities: []string{"Paris", "Nice", "Lyon", "Bordeaux", "Marseille"},
		Regions:         []string{"Provence", "Loire Valley", "French Riviera"},
	},
	{
		Name:            "Spain",
		SuggestedCities: []string{"Barcelona", "Madrid", "Seville", "Granada", "Valencia"},
		Regions:         []string{"Andalusia", "Basque Country", "Costa Brava"},
	},
	{
		Name:            "Portugal",
		SuggestedCities: []string{"Lisbon", "Porto", "Faro", "Sintra"},
		Regions:         []string{"Algarve", "Douro Valley"},
	},
	{
		Name:            "Japan",
		SuggestedCities: []string{"Tokyo", "Kyoto", "Osaka", "Hiroshima", "Nara"},
		Regions:         []string{"Kansai", "Hokkaido", "Okinawa"},
	},
	{
		Name:            "Germany",
		SuggestedCities: []string{"Berlin", "Munich", "Hamburg", "Cologne"},
		Regions:         []string{"Bavaria", "Black Forest", "Rhine Valley"},
	},
	{
		Name:            "Greece",
		SuggestedCities: []string{"Athens", "Santorini", "Mykonos", "Thessaloniki"},
		Regions:         []string{"Cyclades", "Crete", "Peloponnese"},
	},
	{
		Name:            "Thailand",
		SuggestedCities: []string{"Bangkok", "Chiang Mai", "Phuket", "Krabi"},
		Regions:         []string{"Northern Thailand", "Gulf Islands", "Andaman Coast"},
	},
	{
		Name:            "Vietnam",
		SuggestedCities: []string{"Hanoi", "Ho Chi Minh City", "Hoi An", "Da Nang"},
		Regions:         []string{"Ha Long Bay", "Mekong Delta"},
	},
	{
		Name:            "United Kingdom",
		SuggestedCities: []string{"London", "Edinburgh", "Bath", "York"},
		Regions:         []string{"Scottish Highlands", "Lake District", "Cotswolds"},
	},
	{
		Name:            "Australia",
		SuggestedCities: []string{"Sydney", "Melbourne", "Cairns", "Perth"},
		Regions:         []string{"Great Barrier Reef", "Outback"},
	},
	{
		Name:            "Morocco",
		SuggestedCities: []string{"Marrakech", "Fes", "Casablanca", "Chefchaouen"},
		Regions:         []string{"Atlas Mountains", "Sahara"},
	},
}
