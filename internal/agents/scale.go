package agents

// ContentScale sets how much content a learning day carries for a given
// daily time budget.
type ContentScale struct {
	ReadingParts int
	MCQQuestions int
	TFStatements int
	Scenarios    int
}

// contentScales maps the onboarding time choices to their scale.
var contentScales = map[string]ContentScale{
	"5 minutes":   {ReadingParts: 2, MCQQuestions: 2, TFStatements: 2, Scenarios: 1},
	"10 minutes":  {ReadingParts: 3, MCQQuestions: 3, TFStatements: 3, Scenarios: 2},
	"20 minutes":  {ReadingParts: 4, MCQQuestions: 4, TFStatements: 4, Scenarios: 3},
	"30+ minutes": {ReadingParts: 5, MCQQuestions: 6, TFStatements: 4, Scenarios: 4},
}

// ScaleForTime returns the content scale for a daily time budget.
// Unrecognized values get the largest scale.
func ScaleForTime(time string) ContentScale {
	if scale, ok := contentScales[time]; ok {
		return scale
	}
	return contentScales["30+ minutes"]
}
