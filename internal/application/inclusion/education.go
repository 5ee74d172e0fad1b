package inclusion

// EducationContent is one entry from the financial-education library.
type EducationContent struct {
	Topic     string   `json:"topic"`
	Level     string   `json:"level"`
	Content   string   `json:"content"`
	NextSteps []string `json:"next_steps"`
	Resources []string `json:"resources"`
}

var contentLibrary = map[string]map[string]string{
	"savings": {
		"beginner":     "Start by saving 10% of your income each month. Even small amounts add up over time.",
		"intermediate": "Consider high-yield savings accounts and emergency funds covering 3-6 months of expenses.",
		"advanced":     "Optimize savings through tax-advantaged accounts and automated investment strategies.",
	},
	"credit": {
		"beginner":     "Credit is borrowed money you must repay. Good credit history helps you access better loan terms.",
		"intermediate": "Maintain credit utilization below 30% and always pay on time to build strong credit.",
		"advanced":     "Leverage credit strategically for business growth while managing debt-to-income ratios.",
	},
	"investment": {
		"beginner":     "Investing means putting money into assets that can grow in value over time.",
		"intermediate": "Diversify investments across stocks, bonds, and other assets to manage risk.",
		"advanced":     "Consider ESG investing to align financial goals with environmental and social values.",
	},
}

// Education looks up library content for a topic and level. Level defaults
// to beginner; unknown combinations return a placeholder body.
func Education(topic, level string) *EducationContent {
	if level == "" {
		level = "beginner"
	}
	content := "Content not available"
	if byLevel, ok := contentLibrary[topic]; ok {
		if c, ok := byLevel[level]; ok {
			content = c
		}
	}

	return &EducationContent{
		Topic:   topic,
		Level:   level,
		Content: content,
		NextSteps: []string{
			"Practice with small amounts",
			"Track your progress",
			"Ask questions when unsure",
		},
		Resources: []string{
			"Video tutorials available",
			"Interactive calculators",
			"Community support forum",
		},
	}
}
