package sentiment

import (
	"sort"
	"strings"
)

const topKeywordsLimit = 10

// stopWords - фиксированный набор стоп-слов, исключаемых из ключевых слов
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
		"to", "of", "in", "on", "at", "by", "for", "with", "about", "against",
		"between", "into", "through", "during", "before", "after", "above",
		"below", "from", "up", "down", "i", "me", "my", "myself", "we", "our",
		"ours", "ourselves", "you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself", "it",
		"its", "itself", "they", "them", "their", "theirs", "themselves",
		"this", "that", "these", "those", "am", "be", "been", "being", "have",
		"has", "had", "having", "do", "does", "did", "doing", "would",
		"should", "could", "ought", "im", "youre", "hes", "shes", "theyre",
		"ive", "youve", "weve", "theyve", "id", "youd", "hed", "shed", "wed",
		"theyd", "ill", "youll", "hell", "shell", "well", "theyll", "isnt",
		"arent", "wasnt", "werent", "hasnt", "havent", "hadnt", "doesnt",
		"dont", "didnt", "wont", "wouldnt", "shouldnt", "couldnt", "cant",
		"cannot",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// TopKeywords извлекает до 10 самых частых ключевых слов из текста
// Текст приводится к нижнему регистру, пунктуация отбрасывается,
// токены короче 3 символов и стоп-слова исключаются
// При равной частоте сохраняется порядок первого вхождения
func TopKeywords(text string) []string {
	frequency := make(map[string]int)
	firstSeen := make([]string, 0)

	for _, word := range strings.Fields(cleanText(text)) {
		if len(word) <= 2 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}

		if _, seen := frequency[word]; !seen {
			firstSeen = append(firstSeen, word)
		}
		frequency[word]++
	}

	// Стабильная сортировка по убыванию частоты поверх порядка первого вхождения
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return frequency[firstSeen[i]] > frequency[firstSeen[j]]
	})

	if len(firstSeen) > topKeywordsLimit {
		firstSeen = firstSeen[:topKeywordsLimit]
	}

	return firstSeen
}
