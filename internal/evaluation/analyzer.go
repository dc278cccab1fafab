package evaluation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// maxEditDistance is the largest stem edit distance still counted as a keyword match.
const maxEditDistance = 2

var sentenceSeparators = regexp.MustCompile(`[.!?]+`)

// Analysis holds the raw text statistics and keyword partition of an answer.
type Analysis struct {
	Tokens            []string
	WordCount         int
	UniqueWords       int
	SentenceCount     int
	AverageWordLength float64
	MatchedKeywords   []string
	MissingKeywords   []string
	KeywordMatchRatio float64
}

// Tokenize splits text into lower-case word tokens made of letters, digits and underscores.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// CountSentences counts the non-empty segments between runs of '.', '!' and '?'.
func CountSentences(text string) int {
	count := 0
	for _, segment := range sentenceSeparators.Split(text, -1) {
		if segment != "" {
			count++
		}
	}
	return count
}

// Analyze computes the statistics of answer and partitions keywords (lower-cased) into matched and missing.
func Analyze(answer string, keywords []string) Analysis {
	tokens := Tokenize(answer)

	// Used as a divisor, so it never drops below 1.
	wordCount := max(len(tokens), 1)

	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}

	matched, missing := MatchKeywords(tokens, keywords)

	ratio := 0.0
	if len(keywords) > 0 {
		ratio = float64(len(matched)) / float64(len(keywords))
	}

	return Analysis{
		Tokens:            tokens,
		WordCount:         wordCount,
		UniqueWords:       len(unique),
		SentenceCount:     CountSentences(answer),
		AverageWordLength: float64(utf8.RuneCountInString(answer)) / float64(wordCount),
		MatchedKeywords:   matched,
		MissingKeywords:   missing,
		KeywordMatchRatio: ratio,
	}
}

// MatchKeywords partitions the lower-cased keywords by whether any token matches them.
// A token matches when its stem contains the keyword stem or lies within maxEditDistance of it.
// Both returned slices are non-nil and keep the keyword order.
func MatchKeywords(tokens, keywords []string) (matched, missing []string) {
	matched = make([]string, 0, len(keywords))
	missing = make([]string, 0, len(keywords))

	stems := tokenStems(tokens)
	for _, keyword := range keywords {
		keyword = strings.ToLower(keyword)
		if matchesAny(Stem(keyword), stems) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}
	return matched, missing
}

// Stem reduces a word to its Porter stem. Words shorter than three letters are returned as is.
func Stem(word string) string {
	word = strings.ToLower(word)
	if utf8.RuneCountInString(word) < 3 {
		return word
	}
	return porterstemmer.StemString(word)
}

func tokenStems(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	stems := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		stems = append(stems, Stem(t))
	}
	return stems
}

func matchesAny(keywordStem string, tokenStems []string) bool {
	for _, ts := range tokenStems {
		if strings.Contains(ts, keywordStem) {
			return true
		}
		if levenshtein.ComputeDistance(ts, keywordStem) <= maxEditDistance {
			return true
		}
	}
	return false
}
