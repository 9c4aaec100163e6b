package model

// CulturalElements carries the cultural metadata shown on the answer reveal card.
type CulturalElements struct {
	Greeting         string   `json:"greeting,omitempty" bson:"greeting,omitempty"`
	LocalPhrase      string   `json:"localPhrase,omitempty" bson:"localPhrase,omitempty"`
	TraditionalMusic string   `json:"traditionalMusic,omitempty" bson:"traditionalMusic,omitempty"`
	Cuisine          []string `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
}

// TravelInfo carries the practical travel metadata for a destination.
type TravelInfo struct {
	BestTimeToVisit      string   `json:"bestTimeToVisit,omitempty" bson:"bestTimeToVisit,omitempty"`
	MajorAttractions     []string `json:"majorAttractions,omitempty" bson:"majorAttractions,omitempty"`
	LocalTransportation  string   `json:"localTransportation,omitempty" bson:"localTransportation,omitempty"`
	EstimatedDailyBudget string   `json:"estimatedDailyBudget,omitempty" bson:"estimatedDailyBudget,omitempty"`
	TravelTips           string   `json:"travelTips,omitempty" bson:"travelTips,omitempty"`
}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Destination is a city's full trivia payload. The City field doubles as the
// answer identifier: correctness is an exact match against it.
type Destination struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	City             string           `json:"city" bson:"city"`
	Country          string           `json:"country" bson:"country"`
	Clues            []string         `json:"clues" bson:"clues"`
	FunFacts         []string         `json:"funFacts" bson:"funFacts"`
	Trivia           []string         `json:"trivia,omitempty" bson:"trivia,omitempty"`
	Emoji            string           `json:"emoji" bson:"emoji"`
	CulturalElements CulturalElements `json:"culturalElements,omitempty" bson:"culturalElements,omitempty"`
	TravelInfo       TravelInfo       `json:"travelInfo,omitempty" bson:"travelInfo,omitempty"`
	Coordinates      Coordinates      `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Difficulty       string           `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
}
