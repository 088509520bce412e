package stats

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	BadgeExpert     = "Expert"
	BadgeProficient = "Proficient"
	BadgeLearning   = "Learning"
	BadgeNeedsWork  = "Needs Work"

	weakTopicMinAnswers = 5
	weakTopicLimit      = 2
)

func Percentage(c TopicCounters) int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Correct) / float64(c.Total) * 100))
}

// BadgeTier maps an accuracy percentage to a badge, highest tier first.
func BadgeTier(pct int) string {
	switch {
	case pct >= 90:
		return BadgeExpert
	case pct >= 75:
		return BadgeProficient
	case pct >= 50:
		return BadgeLearning
	default:
		return BadgeNeedsWork
	}
}

// Fold collapses stat rows into a topic-keyed map.
func Fold(rows []UserStat) StatsMap {
	out := make(StatsMap, len(rows))
	for _, row := range rows {
		out[row.Topic] = row.Counters()
	}
	return out
}

func NewTopicCard(topic string, c TopicCounters) TopicCard {
	pct := Percentage(c)
	return TopicCard{
		Topic:      topic,
		Total:      c.Total,
		Correct:    c.Correct,
		Incorrect:  c.Incorrect,
		Percentage: pct,
		Badge:      BadgeTier(pct),
	}
}

// TopicCards returns one card per topic in topics, followed by any topic in
// stats that topics does not mention, in lexical order. Topics without
// stats get a zeroed card.
func TopicCards(stats StatsMap, topics []string) []TopicCard {
	ordered := orderTopics(stats, topics)
	return lo.Map(ordered, func(topic string, _ int) TopicCard {
		return NewTopicCard(topic, stats[topic])
	})
}

// WeakTopics returns at most two topics with at least five answers, lowest
// accuracy first. Ties keep the order of topics. Only topics named in topics
// are ranked; an empty list ranks every topic in stats.
func WeakTopics(stats StatsMap, topics []string) []TopicCard {
	ranked, extra := splitTopics(stats, topics)
	if len(ranked) == 0 {
		ranked = extra
	}
	candidates := lo.FilterMap(ranked, func(topic string, _ int) (TopicCard, bool) {
		card := NewTopicCard(topic, stats[topic])
		return card, card.Total >= weakTopicMinAnswers
	})
	slices.SortStableFunc(candidates, func(a, b TopicCard) int {
		return a.Percentage - b.Percentage
	})
	if len(candidates) > weakTopicLimit {
		candidates = candidates[:weakTopicLimit]
	}
	return candidates
}

func BuildDashboard(stats StatsMap, topics []string) Dashboard {
	return Dashboard{
		Cards:      TopicCards(stats, topics),
		WeakTopics: WeakTopics(stats, topics),
	}
}

func orderTopics(stats StatsMap, topics []string) []string {
	named, extra := splitTopics(stats, topics)
	return append(named, extra...)
}

// splitTopics returns the non-blank distinct entries of topics in order, and
// the remaining topics of stats sorted lexically.
func splitTopics(stats StatsMap, topics []string) (named, extra []string) {
	named = lo.Uniq(lo.Filter(topics, func(topic string, _ int) bool {
		return strings.TrimSpace(topic) != ""
	}))
	extra = lo.Without(lo.Keys(map[string]TopicCounters(stats)), named...)
	sort.Strings(extra)
	return named, extra
}
