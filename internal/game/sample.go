package game

import (
	"math/rand"

	"globetrotter/internal/model"
)

// DefaultEmojiSet pads the bonus-question seed when fewer than five emojis
// have been collected.
var DefaultEmojiSet = []string{"🌍", "🧭", "🗺️"}

// DefaultBonusQuestion is served when neither the generator nor the stored
// question pool can produce a usable bonus question.
var DefaultBonusQuestion = model.BonusQuestion{
	Question:     "Which continent has the most countries represented in your collection?",
	Options:      []string{"Asia", "Europe", "Africa", "North America"},
	CorrectIndex: 1,
}

// sampleDestinations is the bundled fallback set used whenever the content
// provider fails or returns too few distinct destinations. A session must
// always be able to build a full question from local data alone.
var sampleDestinations = []model.Destination{
	{
		City:    "New York",
		Country: "United States",
		Clues: []string{
			"The city that never sleeps",
			"Home to the iconic Statue of Liberty",
		},
		FunFacts: []string{
			"New York City has more than 800 languages spoken within its borders.",
			"The first pizzeria in the United States opened in New York City in 1895.",
		},
		Trivia: []string{
			"New York City is made up of five boroughs: Manhattan, Brooklyn, Queens, The Bronx, and Staten Island.",
			"The Empire State Building was built in just 410 days during the Great Depression.",
		},
		Emoji:       "🗽",
		Coordinates: model.Coordinates{Lat: 40.7128, Lng: -74.006},
		Difficulty:  "Medium",
	},
	{
		City:    "Paris",
		Country: "France",
		Clues: []string{
			"City of Light",
			"Home to the Eiffel Tower",
		},
		FunFacts: []string{
			"There are 6,100 streets in Paris.",
			"The Louvre is the most visited museum in the world.",
		},
		Trivia: []string{
			"Paris was originally a Roman city called 'Lutetia'.",
			"There is only one stop sign in the entire city of Paris.",
		},
		Emoji:       "🗼",
		Coordinates: model.Coordinates{Lat: 48.8566, Lng: 2.3522},
		Difficulty:  "Easy",
	},
	{
		City:    "Tokyo",
		Country: "Japan",
		Clues: []string{
			"The most populous metropolitan area in the world",
			"Home to the Imperial Palace",
		},
		FunFacts: []string{
			"Tokyo has over 200 earthquakes per year.",
			"Tokyo was formerly known as Edo.",
		},
		Emoji:       "🗾",
		Coordinates: model.Coordinates{Lat: 35.6762, Lng: 139.6503},
		Difficulty:  "Medium",
	},
	{
		City:    "Cairo",
		Country: "Egypt",
		Clues: []string{
			"City of a Thousand Minarets",
			"Located near the ancient pyramids",
		},
		FunFacts: []string{
			"Cairo is the largest city in Africa.",
			"The city's name means 'The Victorious' in Arabic.",
		},
		Emoji:       "🏜️",
		Coordinates: model.Coordinates{Lat: 30.0444, Lng: 31.2357},
		Difficulty:  "Hard",
	},
	{
		City:    "Sydney",
		Country: "Australia",
		Clues: []string{
			"Harbor city with a famous opera house",
			"Largest city in Australia",
		},
		FunFacts: []string{
			"Sydney Harbour Bridge is the world's largest steel arch bridge.",
			"Sydney Opera House has over one million roof tiles.",
		},
		Emoji:       "🏄",
		Coordinates: model.Coordinates{Lat: -33.8688, Lng: 151.2093},
		Difficulty:  "Easy",
	},
}

// SampleDestinations returns a shuffled copy of up to n bundled destinations.
func SampleDestinations(n int) []model.Destination {
	batch := make([]model.Destination, len(sampleDestinations))
	copy(batch, sampleDestinations)
	rand.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	if n < len(batch) {
		batch = batch[:n]
	}
	return batch
}
