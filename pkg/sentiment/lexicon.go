package sentiment

import "strings"

// valences - фиксированная таблица полярности слов (в духе AFINN)
// Положительные значения - позитивные слова, отрицательные - негативные
var valences = map[string]int{
	"amazing":      4,
	"awesome":      4,
	"best":         3,
	"brilliant":    4,
	"clean":        2,
	"comfortable":  2,
	"convenient":   2,
	"delicious":    3,
	"durable":      2,
	"easy":         2,
	"excellent":    3,
	"fantastic":    4,
	"fast":         1,
	"favorite":     2,
	"fine":         2,
	"friendly":     2,
	"fresh":        2,
	"glad":         3,
	"good":         3,
	"great":        3,
	"happy":        3,
	"helpful":      2,
	"impressive":   3,
	"incredible":   4,
	"like":         2,
	"love":         3,
	"loved":        3,
	"nice":         3,
	"outstanding":  5,
	"perfect":      3,
	"pleasant":     3,
	"pleased":      3,
	"quality":      2,
	"recommend":    2,
	"reliable":     2,
	"satisfied":    2,
	"smooth":       2,
	"solid":        2,
	"stunning":     4,
	"sturdy":       2,
	"superb":       5,
	"useful":       2,
	"value":        1,
	"wonderful":    4,
	"worth":        2,
	"awful":        -3,
	"bad":          -3,
	"broken":       -2,
	"cheap":        -1,
	"crap":         -3,
	"damaged":      -3,
	"defective":    -3,
	"disappointed": -2,
	"disappointing": -2,
	"dirty":        -2,
	"expensive":    -1,
	"fake":         -3,
	"faulty":       -2,
	"flimsy":       -2,
	"fraud":        -4,
	"garbage":      -3,
	"hate":         -3,
	"hated":        -3,
	"horrible":     -3,
	"junk":         -3,
	"late":         -1,
	"lousy":        -3,
	"mediocre":     -1,
	"mess":         -2,
	"misleading":   -3,
	"nasty":        -3,
	"pathetic":     -3,
	"poor":         -2,
	"problem":      -2,
	"refund":       -2,
	"regret":       -2,
	"return":       -1,
	"rude":         -2,
	"sad":          -2,
	"scam":         -4,
	"slow":         -2,
	"terrible":     -3,
	"trash":        -3,
	"ugly":         -3,
	"unhappy":      -2,
	"unreliable":   -2,
	"unusable":     -3,
	"useless":      -2,
	"waste":        -1,
	"weak":         -2,
	"worst":        -3,
	"worthless":    -2,
	"wrong":        -2,
}

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Result - результат лексиконного анализа текста
type Result struct {
	Score       int      `json:"score"`       // Сумма полярностей совпавших токенов
	Comparative float64  `json:"comparative"` // Score, нормированный на число токенов
	Words       []string `json:"words"`       // Все совпавшие токены
	Positive    []string `json:"positive"`    // Совпавшие позитивные токены
	Negative    []string `json:"negative"`    // Совпавшие негативные токены
}

// Score выполняет лексиконный анализ тональности текста
// Чистая функция без состояния: пустой или несовпавший текст дает score 0
func Score(text string) Result {
	result := Result{
		Words:    make([]string, 0),
		Positive: make([]string, 0),
		Negative: make([]string, 0),
	}

	tokens := tokenize(text)
	for _, token := range tokens {
		valence, ok := valences[token]
		if !ok {
			continue
		}

		result.Score += valence
		result.Words = append(result.Words, token)
		if valence > 0 {
			result.Positive = append(result.Positive, token)
		} else {
			result.Negative = append(result.Negative, token)
		}
	}

	if len(tokens) > 0 {
		result.Comparative = float64(result.Score) / float64(len(tokens))
	}

	return result
}

// Label возвращает метку тональности по знаку лексиконного score
func Label(score int) string {
	switch {
	case score > 0:
		return LabelPositive
	case score < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// NormalizedScore приводит comparative к диапазону [-1, 1]
// Используется как fallback значение sentimentScore, когда LLM недоступен
func NormalizedScore(r Result) float64 {
	switch {
	case r.Comparative > 1:
		return 1
	case r.Comparative < -1:
		return -1
	default:
		return r.Comparative
	}
}

// tokenize приводит текст к нижнему регистру, убирает пунктуацию
// и разбивает на слова по пробелам
func tokenize(text string) []string {
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil
	}
	return strings.Fields(cleaned)
}

// cleanText оставляет только буквы, цифры, подчеркивания и пробелы
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(b.String())
}
