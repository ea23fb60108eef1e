package normalizer

import (
	"mindmate/internal/models"
	"slices"
)

var (
	emotionNameKeys  = []string{"emotion", "name", "mood"}
	emotionCountKeys = []string{"count", "value", "frequency"}
)

// EmotionCounts accepts [emotion, count] pairs, {emotion, count} objects or
// an {emotion: count} mapping. Source order is kept; a repeated emotion
// keeps its first position and takes the later count.
func EmotionCounts(v any) []models.EmotionCount {
	acc := newCountAccumulator()
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			switch e := item.(type) {
			case []any:
				if len(e) >= 2 {
					acc.add(Text(e[0]), e[1])
				}
			case *models.RawPayload:
				c, _ := first(e, emotionCountKeys...)
				acc.add(firstText(e, emotionNameKeys...), c)
			}
		}
	case *models.RawPayload:
		for _, k := range t.Keys() {
			c, _ := t.Get(k)
			acc.add(Text(k), c)
		}
	}
	return acc.list
}

type countAccumulator struct {
	list  []models.EmotionCount
	index map[string]int
}

func newCountAccumulator() *countAccumulator {
	return &countAccumulator{list: make([]models.EmotionCount, 0), index: make(map[string]int)}
}

func (a *countAccumulator) add(name string, raw any) {
	if name == "" {
		return
	}
	n, ok := Count(raw)
	if !ok {
		return
	}
	if i, seen := a.index[name]; seen {
		a.list[i].Count = n
		return
	}
	a.index[name] = len(a.list)
	a.list = append(a.list, models.EmotionCount{Emotion: name, Count: n})
}

// TopEmotions orders by count descending, ties in first-seen order, and
// keeps at most n entries (all when n <= 0).
func TopEmotions(list []models.EmotionCount, n int) []models.EmotionCount {
	out := slices.Clone(list)
	if out == nil {
		out = make([]models.EmotionCount, 0)
	}
	slices.SortStableFunc(out, func(a, b models.EmotionCount) int {
		return b.Count - a.Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SelectEmotionCounts picks the dedicated common-emotions result when it has
// data, else the weekly distribution, else an empty list.
func SelectEmotionCounts(common, distribution []models.EmotionCount) []models.EmotionCount {
	switch {
	case len(common) > 0:
		return slices.Clone(common)
	case len(distribution) > 0:
		return slices.Clone(distribution)
	default:
		return make([]models.EmotionCount, 0)
	}
}

// CommonEmotions reads a find_common_emotions result.
func CommonEmotions(raw *models.RawPayload) []models.EmotionCount {
	v, ok := first(raw, "common_emotions", "emotions", "result")
	if !ok {
		return make([]models.EmotionCount, 0)
	}
	return EmotionCounts(v)
}
