package names

import "math"

// CollocationThreshold is the minimum Dunning likelihood score for an
// adjacent pair to be merged into a single "A B" term.
const CollocationThreshold = 30

// Collocate counts unigrams and merges adjacent pairs that occur together
// far more often than chance. Each merged bigram takes its count away from
// both of its words; words left with a non-positive count are dropped.
func Collocate(tokens []string, threshold float64) Frequencies {
	unigrams := Count(tokens)
	if len(tokens) < 2 {
		return unigrams
	}

	bigrams := make(map[[2]string]int)
	var order [][2]string
	for i := 0; i+1 < len(tokens); i++ {
		pair := [2]string{tokens[i], tokens[i+1]}
		if bigrams[pair] == 0 {
			order = append(order, pair)
		}
		bigrams[pair]++
	}

	orig := make(Frequencies, len(unigrams))
	for k, v := range unigrams {
		orig[k] = v
	}

	n := len(tokens)
	for _, pair := range order {
		count := bigrams[pair]
		if collocationScore(count, orig[pair[0]], orig[pair[1]], n) <= threshold {
			continue
		}
		unigrams[pair[0]] -= count
		unigrams[pair[1]] -= count
		unigrams[pair[0]+" "+pair[1]] = count
	}

	for k, v := range unigrams {
		if v <= 0 {
			delete(unigrams, k)
		}
	}
	return unigrams
}

// collocationScore is Dunning's log-likelihood ratio for a bigram with count
// c12 whose words occur c1 and c2 times among n tokens.
func collocationScore(c12, c1, c2, n int) float64 {
	if n <= c1 || n <= c2 {
		return 0
	}
	N := float64(n)
	p := float64(c2) / N
	p1 := float64(c12) / float64(c1)
	p2 := float64(c2-c12) / (N - float64(c1))

	score := logL(c12, c1, p) + logL(c2-c12, n-c1, p) -
		logL(c12, c1, p1) - logL(c2-c12, n-c1, p2)
	return -2 * score
}

func logL(k, n int, x float64) float64 {
	return math.Log(math.Max(x, 1e-10))*float64(k) + math.Log(math.Max(1-x, 1e-10))*float64(n-k)
}
