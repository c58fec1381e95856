package authority

// A breakpoint in a tier table: values strictly above Above earn Fraction of the factor weight.
type Tier struct {
	Above    int64
	Fraction float64
}

// Ordered threshold table for one scoring factor. Tiers must be sorted by Above, ascending, with non-decreasing fractions.
type TierTable struct {
	Weight float64
	// fraction earned below the lowest breakpoint
	Floor float64
	Tiers []Tier
}

// Returns the contribution for a value: the fraction of the highest satisfied breakpoint times the weight.
func (t TierTable) Score(v int64) float64 {
	frac := t.Floor
	for _, tier := range t.Tiers {
		if v <= tier.Above {
			break
		}
		frac = tier.Fraction
	}
	return frac * t.Weight
}

func (t TierTable) Max() float64 {
	if len(t.Tiers) == 0 {
		return t.Floor * t.Weight
	}
	return t.Tiers[len(t.Tiers)-1].Fraction * t.Weight
}

const (
	AgeWeight          = 25
	KarmaWeight        = 20
	ActivityWeight     = 15
	QualityWeight      = 20
	VerificationWeight = 5
	DiversityWeight    = 5
	ConsistencyWeight  = 10

	// sum of the six base factors; rescaled to 100 when the consistency factor is not in play
	baseWeight = AgeWeight + KarmaWeight + ActivityWeight + QualityWeight + VerificationWeight + DiversityWeight
	fullWeight = baseWeight + ConsistencyWeight
)

// account age, in days
var AgeTiers = TierTable{
	Weight: AgeWeight,
	Floor:  0.1,
	Tiers: []Tier{
		{Above: 30, Fraction: 5.0 / 25},
		{Above: 90, Fraction: 7.0 / 25},
		{Above: 180, Fraction: 10.0 / 25},
		{Above: 365, Fraction: 15.0 / 25},
		{Above: 730, Fraction: 17.0 / 25},
		{Above: 1095, Fraction: 20.0 / 25},
		{Above: 1825, Fraction: 22.0 / 25},
		{Above: 2555, Fraction: 1.0},
	},
}

var KarmaTiers = TierTable{
	Weight: KarmaWeight,
	Floor:  0.1,
	Tiers: []Tier{
		{Above: 50, Fraction: 4.0 / 20},
		{Above: 100, Fraction: 6.0 / 20},
		{Above: 500, Fraction: 8.0 / 20},
		{Above: 1000, Fraction: 10.0 / 20},
		{Above: 2500, Fraction: 12.0 / 20},
		{Above: 5000, Fraction: 14.0 / 20},
		{Above: 10000, Fraction: 15.0 / 20},
		{Above: 25000, Fraction: 16.0 / 20},
		{Above: 50000, Fraction: 17.0 / 20},
		{Above: 100000, Fraction: 18.0 / 20},
		{Above: 500000, Fraction: 19.0 / 20},
		{Above: 1000000, Fraction: 1.0},
	},
}

// posts plus comments
var ActivityTiers = TierTable{
	Weight: ActivityWeight,
	Floor:  0.1,
	Tiers: []Tier{
		{Above: 10, Fraction: 3.0 / 15},
		{Above: 25, Fraction: 4.0 / 15},
		{Above: 50, Fraction: 6.0 / 15},
		{Above: 100, Fraction: 7.0 / 15},
		{Above: 250, Fraction: 9.0 / 15},
		{Above: 500, Fraction: 10.0 / 15},
		{Above: 1000, Fraction: 12.0 / 15},
		{Above: 2500, Fraction: 13.0 / 15},
		{Above: 5000, Fraction: 1.0},
	},
}
