package fakedata

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// locale describes how names and addresses look in one country.
// Nil fields fall back to gofakeit's default corpus.
type locale struct {
	code       string
	country    string
	states     []string // empty when the locale has no states
	cities     []string
	firstNames []string
	lastNames  []string
	postalCode func(f *gofakeit.Faker) string
}

var locales = []locale{
	{
		code:       "en_US",
		country:    "United States",
		postalCode: func(f *gofakeit.Faker) string { return f.Zip() },
	},
	{
		code:    "en_GB",
		country: "United Kingdom",
		cities:  []string{"London", "Manchester", "Birmingham", "Leeds", "Glasgow", "Bristol", "Liverpool", "Edinburgh", "Cardiff", "Belfast"},
		postalCode: func(f *gofakeit.Faker) string {
			return strings.ToUpper(f.Lexify("??")) + f.Numerify("# #") + strings.ToUpper(f.Lexify("??"))
		},
	},
	{
		code:    "en_IN",
		country: "India",
		states: []string{"Maharashtra", "Karnataka", "Tamil Nadu", "Delhi", "Gujarat", "West Bengal",
			"Telangana", "Kerala", "Uttar Pradesh", "Rajasthan", "Punjab"},
		cities: []string{"Mumbai", "Bengaluru", "Chennai", "New Delhi", "Ahmedabad", "Kolkata",
			"Hyderabad", "Kochi", "Lucknow", "Jaipur", "Pune"},
		firstNames: []string{"Aarav", "Vivaan", "Aditya", "Arjun", "Rohan", "Ishaan", "Priya", "Ananya",
			"Diya", "Kavya", "Saanvi", "Meera", "Rahul", "Neha", "Vikram", "Pooja"},
		lastNames: []string{"Sharma", "Verma", "Patel", "Iyer", "Reddy", "Nair", "Gupta", "Singh",
			"Mehta", "Kapoor", "Chatterjee", "Rao", "Joshi", "Desai"},
		postalCode: func(f *gofakeit.Faker) string { return f.Numerify("######") },
	},
	{
		code:    "en_CA",
		country: "Canada",
		states: []string{"Ontario", "Quebec", "British Columbia", "Alberta", "Manitoba",
			"Saskatchewan", "Nova Scotia", "New Brunswick"},
		cities: []string{"Toronto", "Montreal", "Vancouver", "Calgary", "Edmonton", "Ottawa", "Winnipeg", "Halifax"},
		postalCode: func(f *gofakeit.Faker) string {
			return strings.ToUpper(f.Lexify("?")) + f.Numerify("#") + strings.ToUpper(f.Lexify("?")) +
				" " + f.Numerify("#") + strings.ToUpper(f.Lexify("?")) + f.Numerify("#")
		},
	},
	{
		code:    "en_AU",
		country: "Australia",
		states: []string{"New South Wales", "Victoria", "Queensland", "Western Australia",
			"South Australia", "Tasmania"},
		cities:     []string{"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide", "Hobart", "Canberra"},
		postalCode: func(f *gofakeit.Faker) string { return f.Numerify("####") },
	},
}

func (l locale) firstName(f *gofakeit.Faker) string {
	if len(l.firstNames) == 0 {
		return f.FirstName()
	}
	return f.RandomString(l.firstNames)
}

func (l locale) lastName(f *gofakeit.Faker) string {
	if len(l.lastNames) == 0 {
		return f.LastName()
	}
	return f.RandomString(l.lastNames)
}

func (l locale) city(f *gofakeit.Faker) string {
	if len(l.cities) == 0 {
		return f.City()
	}
	return f.RandomString(l.cities)
}

func (l locale) state(f *gofakeit.Faker) string {
	switch {
	case l.code == "en_US":
		return f.State()
	case len(l.states) == 0:
		return ""
	default:
		return f.RandomString(l.states)
	}
}
