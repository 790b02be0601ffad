package domain

// ModCategory is the single dominant modifier bucket assigned to a play for
// rating purposes. It is a fixed enum: rating columns are resolved through a
// typed lookup, never by building a column name from input.
type ModCategory string

const (
	CategoryNoMod      ModCategory = "NM"
	CategoryHidden     ModCategory = "HD"
	CategoryHardRock   ModCategory = "HR"
	CategoryDoubleTime ModCategory = "DT"
	CategoryFlashlight ModCategory = "FL"
)

// Categories lists every rating bucket in display order.
var Categories = []ModCategory{
	CategoryNoMod,
	CategoryHidden,
	CategoryHardRock,
	CategoryDoubleTime,
	CategoryFlashlight,
}

// RatingVector holds one exponential-moving-average skill rating per mod
// category. Every field is seeded at 0 and only mutated through plays
// classified into that category.
type RatingVector struct {
	NoMod      float64 `json:"nm"`
	Hidden     float64 `json:"hd"`
	HardRock   float64 `json:"hr"`
	DoubleTime float64 `json:"dt"`
	Flashlight float64 `json:"fl"`
}

// Get returns the rating for the given category. Unknown categories read as
// the no-mod bucket.
func (v RatingVector) Get(cat ModCategory) float64 {
	switch cat {
	case CategoryHidden:
		return v.Hidden
	case CategoryHardRock:
		return v.HardRock
	case CategoryDoubleTime:
		return v.DoubleTime
	case CategoryFlashlight:
		return v.Flashlight
	default:
		return v.NoMod
	}
}

// Set stores the rating for the given category. Unknown categories write to
// the no-mod bucket.
func (v *RatingVector) Set(cat ModCategory, rating float64) {
	switch cat {
	case CategoryHidden:
		v.Hidden = rating
	case CategoryHardRock:
		v.HardRock = rating
	case CategoryDoubleTime:
		v.DoubleTime = rating
	case CategoryFlashlight:
		v.Flashlight = rating
	default:
		v.NoMod = rating
	}
}

// Values returns the five ratings in Categories order, for API payloads.
func (v RatingVector) Values() []float64 {
	return []float64{v.NoMod, v.Hidden, v.HardRock, v.DoubleTime, v.Flashlight}
}
