package model

// RatingLevel is the closed four-level smiley scale used on every question.
type RatingLevel int

const (
	RatingPoor      RatingLevel = 1
	RatingFair      RatingLevel = 2
	RatingGood      RatingLevel = 3
	RatingExcellent RatingLevel = 4
)

// RatingLevels lists all valid levels in ascending order.
var RatingLevels = []RatingLevel{RatingPoor, RatingFair, RatingGood, RatingExcellent}

func (r RatingLevel) Valid() bool {
	return r >= RatingPoor && r <= RatingExcellent
}

func (r RatingLevel) Label() string {
	switch r {
	case RatingPoor:
		return "Poor"
	case RatingFair:
		return "Fair"
	case RatingGood:
		return "Good"
	case RatingExcellent:
		return "Excellent"
	}
	return ""
}

func (r RatingLevel) Emoji() string {
	switch r {
	case RatingPoor:
		return "😞"
	case RatingFair:
		return "😐"
	case RatingGood:
		return "🙂"
	case RatingExcellent:
		return "😀"
	}
	return ""
}

func (r RatingLevel) Color() string {
	switch r {
	case RatingPoor:
		return "red"
	case RatingFair:
		return "orange"
	case RatingGood:
		return "yellow"
	case RatingExcellent:
		return "green"
	}
	return ""
}

// RatingOption is the wire shape form clients use to render the scale.
type RatingOption struct {
	Level RatingLevel `json:"level"`
	Label string      `json:"label"`
	Emoji string      `json:"emoji"`
	Color string      `json:"color"`
}

func RatingOptions() []RatingOption {
	options := make([]RatingOption, 0, len(RatingLevels))
	for _, level := range RatingLevels {
		options = append(options, RatingOption{
			Level: level,
			Label: level.Label(),
			Emoji: level.Emoji(),
			Color: level.Color(),
		})
	}
	return options
}
