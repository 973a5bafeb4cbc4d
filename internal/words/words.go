// Package words ranks each speaker's most used words and derives the
// cross-speaker standings shown next to them.
package words

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/tokenize"
)

// TopN is the number of words kept per speaker.
const TopN = 10

// PodiumSize is the number of global words given a medal.
const PodiumSize = 3

type speakerWords struct {
	order  []string
	usages map[string][]models.WordUsage
}

// Analyze returns one WordAnalysis per speaker that used at least one
// token, ordered by speaker name. Media-like messages are ignored.
func Analyze(messages []models.ParsedMessage) []models.WordAnalysis {
	bySpeaker := make(map[string]*speakerWords)
	var speakers []string

	for _, m := range messages {
		if m.IsMediaLike {
			continue
		}
		tokens := tokenize.Tokenize(m.Text)
		if len(tokens) == 0 {
			continue
		}

		sw, ok := bySpeaker[m.Speaker]
		if !ok {
			sw = &speakerWords{usages: make(map[string][]models.WordUsage)}
			bySpeaker[m.Speaker] = sw
			speakers = append(speakers, m.Speaker)
		}
		usage := models.WordUsage{Date: m.Date, Time: m.Time, Message: m.Text}
		for _, tok := range tokens {
			if _, seen := sw.usages[tok]; !seen {
				sw.order = append(sw.order, tok)
			}
			sw.usages[tok] = append(sw.usages[tok], usage)
		}
	}

	col := collate.New(language.Korean)
	sort.SliceStable(speakers, func(i, j int) bool {
		return col.CompareString(speakers[i], speakers[j]) < 0
	})

	analyses := make([]models.WordAnalysis, 0, len(speakers))
	for _, speaker := range speakers {
		analyses = append(analyses, rank(speaker, bySpeaker[speaker]))
	}
	return analyses
}

func rank(speaker string, sw *speakerWords) models.WordAnalysis {
	counts := make([]models.WordCount, 0, len(sw.order))
	for _, w := range sw.order {
		counts = append(counts, models.WordCount{Word: w, Count: len(sw.usages[w])})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > TopN {
		counts = counts[:TopN]
	}

	usages := make(map[string][]models.WordUsage, len(counts))
	for i := range counts {
		counts[i].Rank = i + 1
		usages[counts[i].Word] = sw.usages[counts[i].Word]
	}

	return models.WordAnalysis{
		Speaker:    speaker,
		TopWords:   counts,
		WordUsages: usages,
	}
}

// GlobalRanking combines every speaker's top list. Only words in some
// speaker's top list take part, and a speaker only contributes the counts
// of words in their own top list. Words are ordered by summed count; each
// word's speakers are ordered by their count.
func GlobalRanking(analyses []models.WordAnalysis) []models.GlobalWordRank {
	index := make(map[string]int)
	var ranks []models.GlobalWordRank

	for _, a := range analyses {
		for _, wc := range a.TopWords {
			i, ok := index[wc.Word]
			if !ok {
				i = len(ranks)
				index[wc.Word] = i
				ranks = append(ranks, models.GlobalWordRank{Word: wc.Word})
			}
			ranks[i].TotalCount += wc.Count
			ranks[i].Speakers = append(ranks[i].Speakers, models.SpeakerWordCount{Speaker: a.Speaker, Count: wc.Count})
		}
	}

	for i := range ranks {
		sp := ranks[i].Speakers
		sort.SliceStable(sp, func(a, b int) bool { return sp[a].Count > sp[b].Count })
		ranks[i].TopSpeaker = sp[0].Speaker
		ranks[i].TopCount = sp[0].Count
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].TotalCount > ranks[j].TotalCount
	})

	if ranks == nil {
		ranks = []models.GlobalWordRank{}
	}
	return ranks
}

// Podium returns the gold, silver and bronze words by summed count.
func Podium(analyses []models.WordAnalysis) []models.GlobalWordRank {
	ranks := GlobalRanking(analyses)
	if len(ranks) > PodiumSize {
		ranks = ranks[:PodiumSize]
	}
	return ranks
}

// Standing returns speaker's 1-based position among the users of word in
// ranks, or 0 when they are not listed.
func Standing(ranks []models.GlobalWordRank, word, speaker string) int {
	for _, r := range ranks {
		if r.Word != word {
			continue
		}
		for i, s := range r.Speakers {
			if s.Speaker == speaker {
				return i + 1
			}
		}
		return 0
	}
	return 0
}
