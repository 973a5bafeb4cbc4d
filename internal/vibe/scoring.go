package vibe

import (
	"math"
	"sort"

	"github.com/neilberkman/chatvibe/internal/models"
)

// Bucket is one behavioral dimension a speaker is scored on.
type Bucket int

const (
	Aggressive Bucket = iota
	Positive
	Curious
	LinkSharing
	Exclamatory
	Verbose
	NightOwl
	MorningPerson

	bucketCount
)

// Buckets lists every bucket in tie-break order.
var Buckets = []Bucket{Aggressive, Positive, Curious, LinkSharing, Exclamatory, Verbose, NightOwl, MorningPerson}

var bucketLabels = [bucketCount]string{"난폭", "긍정", "궁금", "링크", "감탄", "수다", "올빼미", "아침형"}

// Label returns the Korean name of the bucket.
func (b Bucket) Label() string {
	if b < 0 || b >= bucketCount {
		return "?"
	}
	return bucketLabels[b]
}

func (b Bucket) String() string { return b.Label() }

// Scores holds one value in [0,1] per bucket.
type Scores [bucketCount]float64

// Ranked is a bucket with its score.
type Ranked struct {
	Bucket Bucket
	Score  float64
}

// Ordered sorts buckets by score, highest first. Equal scores keep the
// order of Buckets.
func (s Scores) Ordered() []Ranked {
	out := make([]Ranked, 0, bucketCount)
	for _, b := range Buckets {
		out = append(out, Ranked{Bucket: b, Score: s[b]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

const (
	sentimentCoverage = 30.0
	exclamationFull   = 35.0
	questionFull      = 25.0
	linkFull          = 20.0
	lengthFull        = 120.0
	timeShareFull     = 0.45

	weightMin, weightMax = 0.25, 4.0
	boostThreshold       = 90
	boostFloor           = 0.05
	contrastGamma        = 0.65
)

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// scale maps a 0-100 slider linearly onto [lo, hi].
func scale(pct int, lo, hi float64) float64 {
	return lo + float64(pct)/100*(hi-lo)
}

func contrast(x float64) float64 {
	return clamp01(math.Pow(clamp01(x), contrastGamma))
}

// BaseScores scores the raw features without any settings applied.
// Sentiment-driven buckets are damped until a speaker has used 30
// sentiment words.
func BaseScores(f models.SpeakerFeatures) Scores {
	totalTime := float64(f.TimeDistribution.Total())
	if totalTime == 0 {
		totalTime = 1
	}
	share := func(slot models.TimeSlot) float64 {
		return float64(f.TimeDistribution.Count(slot)) / totalTime
	}

	pos, neg := float64(f.PositiveCount), float64(f.NegativeCount)
	totalSent := pos + neg
	coverage := clamp01(totalSent / sentimentCoverage)

	var negRel, posRel float64
	if totalSent > 0 {
		negRel = math.Max(0, neg-pos) / totalSent
		posRel = math.Max(0, pos-neg) / totalSent
	}
	exclaim := clamp01(float64(f.ExclamationCount) / exclamationFull)

	var s Scores
	s[Aggressive] = clamp01(negRel*0.9+exclaim*0.1) * coverage
	s[Positive] = clamp01(posRel) * coverage
	s[Curious] = clamp01(float64(f.QuestionCount) / questionFull)
	s[LinkSharing] = clamp01(float64(f.LinkCount) / linkFull)
	s[Exclamatory] = exclaim
	s[Verbose] = clamp01(float64(f.AverageMessageLength) / lengthFull)
	s[NightOwl] = clamp01(share(models.SlotDawn) / timeShareFull)
	s[MorningPerson] = clamp01(share(models.SlotMorning) / timeShareFull)
	return s
}

// tuning binds a bucket to its slider.
type tuning struct {
	slider   func(models.Settings) int
	biasSpan float64
	boost    float64
}

var tunings = map[Bucket]tuning{
	Aggressive:    {slider: func(s models.Settings) int { return s.AggressivenessSensitivity }, biasSpan: 0.25, boost: 0.15},
	Positive:      {slider: func(s models.Settings) int { return s.PraiseSensitivity }, biasSpan: 0.25, boost: 0.15},
	Curious:       {slider: func(s models.Settings) int { return s.QuestionSensitivity }, biasSpan: 0.2, boost: 0.12},
	Exclamatory:   {slider: func(s models.Settings) int { return s.EmotionSensitivity }, biasSpan: 0.2, boost: 0.12},
	Verbose:       {slider: func(s models.Settings) int { return s.MessageLengthSensitivity }, biasSpan: 0.2, boost: 0.12},
	NightOwl:      {slider: func(s models.Settings) int { return s.TimePatternSensitivity }, biasSpan: 0.15},
	MorningPerson: {slider: func(s models.Settings) int { return s.TimePatternSensitivity }, biasSpan: 0.15},
}

// ApplySettings weights the base scores by the sliders, amplifies buckets
// whose slider is at 90 or more when the data already supports them, and
// finally spreads the scores apart with a gamma curve. LinkSharing has no
// slider and passes through with weight 1.
func ApplySettings(base Scores, settings models.Settings) Scores {
	var out Scores
	for _, b := range Buckets {
		t, ok := tunings[b]
		if !ok {
			out[b] = contrast(clamp01(base[b]))
			continue
		}
		pct := t.slider(settings)
		w := scale(pct, weightMin, weightMax)
		bias := scale(pct, -t.biasSpan, t.biasSpan)
		v := clamp01(base[b]*w + bias)
		if t.boost > 0 && pct >= boostThreshold && base[b] > boostFloor {
			v = clamp01(v + t.boost)
		}
		out[b] = contrast(v)
	}
	return out
}

// FinalScores is BaseScores followed by ApplySettings.
func FinalScores(f models.SpeakerFeatures, settings models.Settings) Scores {
	return ApplySettings(BaseScores(f), settings)
}
