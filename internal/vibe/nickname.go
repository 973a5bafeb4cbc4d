package vibe

import (
	"strings"

	"github.com/neilberkman/chatvibe/internal/models"
)

const (
	// MaxTraits is the most traits a heuristic assignment produces.
	MaxTraits = 3
	// TraitThreshold is the lowest final score that earns a trait.
	TraitThreshold = 0.33

	kingSuffix = "왕"
)

var nicknameBases = [bucketCount][]string{
	Aggressive:    {"직설가", "스트레이트", "확신러", "난폭왕"},
	Positive:      {"해피메이커", "햇살러", "무드업", "갓"},
	Curious:       {"질문요정", "왜맨", "호기심러", "탐구왕", "호기심천국"},
	LinkSharing:   {"링크수집가", "정보브로커", "링크러", "자료왕"},
	Exclamatory:   {"리액션장인", "표현대장", "감탄머신", "리액션봇"},
	Verbose:       {"디테일러", "장문러", "설명왕", "분석러"},
	NightOwl:      {"올빼미", "야행성", "새벽러", "밤지킴이"},
	MorningPerson: {"아침형", "아침지킴이", "모닝러", "모닝버드"},
}

var traitNames = [bucketCount][]string{
	Aggressive:    {"과격파", "직설파", "스트레이트"},
	Positive:      {"긍정왕", "낙관파", "분위기메이커"},
	Curious:       {"궁금이", "탐구파", "왜많이묻는러"},
	LinkSharing:   {"링크수집가", "정보수집가", "큐레이터"},
	Exclamatory:   {"리액션장인", "표현대장", "감탄러"},
	Verbose:       {"디테일러", "장문러", "설명러"},
	NightOwl:      {"올빼미", "야행성", "새벽형"},
	MorningPerson: {"아침형", "모닝형", "아침지킴이"},
}

// variantSuffixes are tried on the primary bucket's first base once every
// other option is taken.
var variantSuffixes = []string{"에이스", "리드", "마스터"}

func isKing(base string) bool { return strings.HasSuffix(base, kingSuffix) }

func kingHead(base string) string { return strings.TrimSuffix(base, kingSuffix) }

// Assignment is the nickname and traits chosen for one speaker.
type Assignment struct {
	Nickname  string
	Base      string
	Traits    []string
	Primary   Bucket
	Secondary Bucket
	Scores    Scores
}

// Assigner hands out nickname bases and traits across the speakers of one
// analysis run so that no two speakers share a base while alternatives
// remain. Create a new Assigner for every run.
type Assigner struct {
	usedBases     map[string]struct{}
	usedKingHeads map[string]struct{}
	traitUsage    map[string]int
}

// NewAssigner returns an Assigner with nothing claimed.
func NewAssigner() *Assigner {
	return &Assigner{
		usedBases:     make(map[string]struct{}),
		usedKingHeads: make(map[string]struct{}),
		traitUsage:    make(map[string]int),
	}
}

// Assign scores f under settings and claims a nickname base and traits for
// speaker. Earlier calls get first pick.
func (a *Assigner) Assign(speaker string, f models.SpeakerFeatures, settings models.Settings) Assignment {
	scores := FinalScores(f, settings)
	ordered := scores.Ordered()
	primary, secondary := ordered[0].Bucket, ordered[1].Bucket

	base := a.chooseBase(primary, secondary)
	return Assignment{
		Nickname:  base + speaker,
		Base:      base,
		Traits:    a.chooseTraits(ordered),
		Primary:   primary,
		Secondary: secondary,
		Scores:    scores,
	}
}

func (a *Assigner) used(base string) bool {
	_, ok := a.usedBases[base]
	return ok
}

func (a *Assigner) claim(base string) string {
	a.usedBases[base] = struct{}{}
	return base
}

func (a *Assigner) chooseBase(primary, secondary Bucket) string {
	list := nicknameBases[primary]

	for _, b := range list {
		if !isKing(b) && !a.used(b) {
			return a.claim(b)
		}
	}

	for _, b := range list {
		if !isKing(b) || a.used(b) {
			continue
		}
		if _, taken := a.usedKingHeads[kingHead(b)]; taken {
			continue
		}
		a.usedKingHeads[kingHead(b)] = struct{}{}
		return a.claim(b)
	}

	hybrid := plainBase(primary) + "-" + plainBase(secondary)
	if !a.used(hybrid) {
		return a.claim(hybrid)
	}

	seed := list[0]
	for _, suffix := range variantSuffixes {
		if v := seed + suffix; !a.used(v) {
			return a.claim(v)
		}
	}
	return a.claim(seed)
}

// plainBase is the first base of b without the king suffix.
func plainBase(b Bucket) string {
	for _, base := range nicknameBases[b] {
		if !isKing(base) {
			return base
		}
	}
	return nicknameBases[b][0]
}

// chooseTraits walks the buckets after the primary one and takes the least
// used synonym of each bucket scoring at least TraitThreshold. A speaker
// always gets at least the secondary bucket's first trait.
func (a *Assigner) chooseTraits(ordered []Ranked) []string {
	traits := make([]string, 0, MaxTraits)

	for _, r := range ordered[1:] {
		if r.Score < TraitThreshold {
			continue
		}
		candidates := traitNames[r.Bucket]
		best := candidates[0]
		for _, c := range candidates[1:] {
			if a.traitUsage[c] < a.traitUsage[best] {
				best = c
			}
		}
		if !contains(traits, best) {
			traits = append(traits, best)
			a.traitUsage[best]++
		}
		if len(traits) >= MaxTraits {
			break
		}
	}

	if len(traits) == 0 {
		t := traitNames[ordered[1].Bucket][0]
		traits = append(traits, t)
		a.traitUsage[t]++
	}
	return traits
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
