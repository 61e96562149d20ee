package sentiment

// Weighted polarity lexicons (lowercase). Multi-word entries are matched as
// substrings so phrases like "highly recommend" score as a unit.
var positiveWords = map[string]float64{
	"excellent": 0.8, "amazing": 0.8, "outstanding": 0.8, "love": 0.7,
	"best": 0.7, "great": 0.6, "fantastic": 0.7, "wonderful": 0.7,
	"perfect": 0.8, "awesome": 0.7, "good": 0.4, "quality": 0.4,
	"reliable": 0.5, "trusted": 0.5, "popular": 0.4, "innovative": 0.5,
	"comfortable": 0.5, "affordable": 0.4, "premium": 0.4, "leading": 0.4,
	"top rated": 0.7, "highly recommend": 0.8, "recommended": 0.5,
	"favorite": 0.6, "durable": 0.5, "stylish": 0.4, "easy": 0.3,
	"fast": 0.3, "free shipping": 0.4, "award": 0.5, "win": 0.4,
	"growth": 0.4, "improve": 0.4, "success": 0.5, "satisfied": 0.6,
	"happy": 0.5, "enjoy": 0.5, "impressive": 0.6, "value": 0.3,
}

var negativeWords = map[string]float64{
	"terrible": 0.8, "awful": 0.8, "horrible": 0.8, "worst": 0.8,
	"hate": 0.7, "bad": 0.5, "poor": 0.5, "disappointing": 0.7,
	"disappointed": 0.7, "cheap": 0.3, "broken": 0.6, "defective": 0.7,
	"uncomfortable": 0.5, "overpriced": 0.6, "expensive": 0.3,
	"slow": 0.3, "unreliable": 0.6, "scam": 0.9, "fraud": 0.9,
	"fake": 0.7, "refund": 0.4, "complaint": 0.5, "complaints": 0.5,
	"problem": 0.4, "problems": 0.4, "issue": 0.3, "issues": 0.3,
	"avoid": 0.6, "never again": 0.8, "waste": 0.6, "useless": 0.7,
	"fail": 0.5, "failed": 0.5, "decline": 0.4, "loss": 0.4,
	"recall": 0.5, "warning": 0.4, "lawsuit": 0.6, "damaged": 0.5,
}
