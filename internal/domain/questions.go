package domain

// DefaultQuestionBank returns the fixed ten-question survey in presentation order.
// The bank is defined at build time; image paths are resolved against the
// configured assets directory.
func DefaultQuestionBank() []Question {
	return []Question{
		{
			ID:     "q1",
			Prompt: "What type of plastic is it ?",
			Image:  "/q1.jpeg",
			Options: []Option{
				{ID: "a", Text: "PET", Correct: true},
				{ID: "b", Text: "PVC", Correct: false},
				{ID: "c", Text: "Other", Correct: false},
			},
		},
		{
			ID:     "q2",
			Prompt: "Which type of plastics is the most dangerous for carrying food ?",
			Image:  "/q2.png",
			Options: []Option{
				{ID: "a", Text: "PVC", Correct: true},
				{ID: "b", Text: "HDPE", Correct: false},
				{ID: "c", Text: "PET", Correct: false},
			},
		},
		{
			ID:     "q3",
			Prompt: "What type of plastic is it ?",
			Image:  "/q3.jpeg",
			Options: []Option{
				{ID: "a", Text: "PET", Correct: false},
				{ID: "b", Text: "PP", Correct: true},
				{ID: "c", Text: "PVC", Correct: false},
			},
		},
		{
			ID:     "q4",
			Prompt: "One of the harms of using plastics in the wrong way is.",
			Image:  "/q4.png",
			Options: []Option{
				{ID: "a", Text: "Sleepless issue", Correct: false},
				{ID: "b", Text: "Constipation", Correct: false},
				{ID: "c", Text: "Fertility problem", Correct: true},
			},
		},
		{
			ID:     "q5",
			Prompt: "What type of plastic is it?.",
			Image:  "/q5.jpeg",
			Options: []Option{
				{ID: "a", Text: "LDPE", Correct: true},
				{ID: "b", Text: "HDPE", Correct: false},
				{ID: "c", Text: "PET", Correct: false},
			},
		},
		{
			ID:     "q6",
			Prompt: "Which one is the best to use?",
			Image:  "/q6.jpeg",
			Options: []Option{
				{ID: "a", Text: "Pic 1", Correct: false},
				{ID: "b", Text: "Pic 2", Correct: true},
			},
		},
		{
			ID:     "q7",
			Prompt: "What is the impact of using plastics a lot?",
			Image:  "/q7.jpeg",
			Options: []Option{
				{ID: "a", Text: "Pic 1", Correct: false},
				{ID: "b", Text: "Pic 2", Correct: false},
				{ID: "c", Text: "Pic 3", Correct: true},
			},
		},
		{
			ID:     "q8",
			Prompt: "Which one harms the environment the most?",
			Image:  "/q8.jpg",
			Options: []Option{
				{ID: "a", Text: "Pic 1", Correct: false},
				{ID: "b", Text: "Pic 2", Correct: true},
			},
		},
		{
			ID:     "q9",
			Prompt: "Which one is correct ?",
			Image:  "/q9.jpg",
			Options: []Option{
				{ID: "a", Text: "Tr. Theingi looks like Lisa.", Correct: false},
				{ID: "b", Text: "Lisa looks like Tr. Theingi", Correct: true},
			},
		},
		{
			ID:     "q10",
			Prompt: "How many days did we attend this class until now?",
			Image:  "/q10.jpeg",
			Options: []Option{
				{ID: "a", Text: "45 days", Correct: false},
				{ID: "b", Text: "46 days", Correct: true},
				{ID: "c", Text: "47 days", Correct: false},
			},
		},
	}
}
