// Package tfidf implements the trained text-similarity index: a TF-IDF
// vectorizer fitted offline over every POI's content field, plus cosine
// similarity between an ad-hoc query and any subset of catalog rows.
package tfidf

import (
	"math"
	"sort"
)

// Params are the vectorizer hyperparameters. Zero values fall back to the
// defaults the catalog was trained with.
type Params struct {
	MaxFeatures int     // vocabulary cap, default 1000
	MinDF       int     // term must appear in at least MinDF documents, default 2
	MaxDF       float64 // term must appear in at most MaxDF fraction of documents, default 0.8
	NGram       int     // largest n-gram size, default 2 (unigrams + bigrams)
}

func (p Params) withDefaults() Params {
	if p.MaxFeatures <= 0 {
		p.MaxFeatures = 1000
	}
	if p.MinDF <= 0 {
		p.MinDF = 2
	}
	if p.MaxDF <= 0 || p.MaxDF > 1 {
		p.MaxDF = 0.8
	}
	if p.NGram <= 0 {
		p.NGram = 2
	}
	return p
}

// sparseVec is an L2-normalized sparse TF-IDF vector keyed by vocabulary
// index. The dot product of two normalized vectors is their cosine
// similarity directly.
type sparseVec map[int]float64

// Index is a fitted vectorizer plus the per-document vectors it produced.
// Immutable once fitted; Vectorize and Similarity never refit.
type Index struct {
	params     Params
	vocabulary map[string]int
	idf        []float64
	docs       []sparseVec
}

// Fit trains the vectorizer over the document corpus and vectorizes every
// document. Document order must match catalog row order; that alignment is
// what the artifact checksum protects.
func Fit(docs []string, params Params) *Index {
	params = params.withDefaults()

	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for i, doc := range docs {
		tokens := tokenize(doc, params.NGram)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			termFreq[t]++
			if _, ok := seen[t]; !ok {
				docFreq[t]++
				seen[t] = struct{}{}
			}
		}
	}

	// Document-frequency bounds drop both noise terms and terms too
	// common to discriminate.
	maxDocs := int(params.MaxDF * float64(len(docs)))
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= params.MinDF && df <= maxDocs {
			candidates = append(candidates, term)
		}
	}

	// Cap the vocabulary at the most frequent terms, alphabetical on ties
	// so fitting is deterministic.
	sort.Slice(candidates, func(a, b int) bool {
		if termFreq[candidates[a]] != termFreq[candidates[b]] {
			return termFreq[candidates[a]] > termFreq[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})
	if len(candidates) > params.MaxFeatures {
		candidates = candidates[:params.MaxFeatures]
	}
	sort.Strings(candidates)

	idx := &Index{
		params:     params,
		vocabulary: make(map[string]int, len(candidates)),
		idf:        make([]float64, len(candidates)),
	}
	n := float64(len(docs))
	for i, term := range candidates {
		idx.vocabulary[term] = i
		// Smoothed IDF keeps every weight positive.
		idx.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	idx.docs = make([]sparseVec, len(docs))
	for i, tokens := range tokenized {
		idx.docs[i] = idx.vectorizeTokens(tokens)
	}
	return idx
}

func (idx *Index) vectorizeTokens(tokens []string) sparseVec {
	counts := make(map[int]float64)
	for _, t := range tokens {
		if vi, ok := idx.vocabulary[t]; ok {
			counts[vi]++
		}
	}
	var normSq float64
	for vi, count := range counts {
		w := count * idx.idf[vi]
		counts[vi] = w
		normSq += w * w
	}
	if normSq == 0 {
		return counts
	}
	norm := math.Sqrt(normSq)
	for vi := range counts {
		counts[vi] /= norm
	}
	return counts
}

// Vectorize turns a query string into a normalized TF-IDF vector using the
// already-fitted vocabulary.
func (idx *Index) Vectorize(query string) sparseVec {
	return idx.vectorizeTokens(tokenize(query, idx.params.NGram))
}

// Similarity returns the cosine similarity of the query against each
// candidate catalog row, one score per candidate, each in [0,1].
func (idx *Index) Similarity(query string, candidateRows []int) []float64 {
	qv := idx.Vectorize(query)
	scores := make([]float64, len(candidateRows))
	for i, row := range candidateRows {
		scores[i] = dot(qv, idx.docs[row])
	}
	return scores
}

// Len returns the number of documents the index was fitted on.
func (idx *Index) Len() int { return len(idx.docs) }

// VocabularySize returns the fitted vocabulary size.
func (idx *Index) VocabularySize() int { return len(idx.vocabulary) }

func dot(a, b sparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for vi, w := range a {
		sum += w * b[vi]
	}
	return sum
}
