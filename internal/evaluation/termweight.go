package evaluation

import "math"

// TermIndex is a small TF-IDF index over tokenized documents.
type TermIndex struct {
	documents []map[string]int
}

func NewTermIndex() *TermIndex {
	return &TermIndex{}
}

// AddDocument tokenizes text and appends it to the index.
func (ix *TermIndex) AddDocument(text string) {
	counts := make(map[string]int)
	for _, t := range Tokenize(text) {
		counts[t]++
	}
	ix.documents = append(ix.documents, counts)
}

func (ix *TermIndex) Len() int {
	return len(ix.documents)
}

// IDF is log(N/df) for a term found in df of N documents, and 0 for a term found nowhere.
func (ix *TermIndex) IDF(term string) float64 {
	df := 0
	for _, doc := range ix.documents {
		if doc[term] > 0 {
			df++
		}
	}
	if df == 0 {
		return 0
	}
	return math.Log(float64(len(ix.documents)) / float64(df))
}

// TFIDF returns the weight of term in document d. Multi-word terms sum the weight of every word.
func (ix *TermIndex) TFIDF(term string, d int) float64 {
	if d < 0 || d >= len(ix.documents) {
		return 0
	}

	weight := 0.0
	for _, t := range Tokenize(term) {
		weight += float64(ix.documents[d][t]) * ix.IDF(t)
	}
	return weight
}

// SemanticScore averages the TF-IDF weight of every keyword inside an index built from the answer
// alone, capped at 1. With one document every idf is log(1) = 0, so the score is 0 for any input.
func SemanticScore(answer string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	ix := NewTermIndex()
	ix.AddDocument(answer)

	total := 0.0
	for _, k := range keywords {
		total += ix.TFIDF(k, 0)
	}
	return math.Min(total/float64(len(keywords)), 1.0)
}
