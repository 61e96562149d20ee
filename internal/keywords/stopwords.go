package keywords

// stopwords covers English function words plus the common verbs, adverbs and
// adjectives that carry no topical signal in a business description. Tokens
// on this list never qualify as keywords.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// determiners, pronouns, conjunctions, prepositions
		"a", "an", "the", "this", "that", "these", "those", "some", "any",
		"each", "every", "no", "none", "both", "either", "neither", "such",
		"i", "me", "my", "mine", "we", "us", "our", "ours", "you", "your",
		"yours", "he", "him", "his", "she", "her", "hers", "it", "its",
		"they", "them", "their", "theirs", "who", "whom", "whose", "which",
		"what", "where", "when", "why", "how", "and", "or", "but", "nor",
		"so", "yet", "if", "then", "else", "because", "although", "though",
		"while", "unless", "until", "since", "of", "in", "on", "at", "to",
		"from", "by", "with", "about", "against", "between", "into",
		"through", "during", "before", "after", "above", "below", "under",
		"over", "up", "down", "out", "off", "for", "as", "per", "via",
		// auxiliaries and common verbs
		"be", "is", "am", "are", "was", "were", "been", "being", "have",
		"has", "had", "having", "do", "does", "did", "doing", "will",
		"would", "shall", "should", "can", "could", "may", "might", "must",
		"want", "wants", "wanted", "need", "needs", "needed", "like",
		"likes", "make", "makes", "made", "get", "gets", "got", "sell",
		"sells", "selling", "sold", "buy", "buys", "buying", "offer",
		"offers", "offering", "provide", "provides", "providing", "run",
		"runs", "running", "start", "starting", "started", "open",
		"opening", "opened", "help", "helps", "helping", "looking", "look",
		"create", "creating", "build", "building", "launch", "launching",
		// generic qualifiers
		"not", "very", "really", "just", "also", "too", "more", "most",
		"less", "least", "much", "many", "few", "own", "same", "other",
		"another", "new", "good", "great", "best", "better", "small",
		"big", "large", "high", "low", "all", "here", "there", "now",
		"today", "currently", "mainly", "mostly", "etc",
		// filler nouns that add no topical signal
		"business", "company", "goal", "goals", "thing", "things", "way",
		"ways", "lot", "lots", "kind", "kinds", "type", "types",
	} {
		stopwords[w] = struct{}{}
	}
}

// isStopword reports whether the lower-cased token carries no topical signal.
func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
