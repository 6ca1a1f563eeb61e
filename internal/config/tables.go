package config

// DefaultTrustedDomains maps publisher domains to a credibility value in
// [0,1]. Matching is suffix-based so subdomains inherit the entry.
func DefaultTrustedDomains() map[string]float64 {
	return map[string]float64{
		"arxiv.org":       0.9,
		"nature.com":      0.9,
		"science.org":     0.9,
		"bls.gov":         0.9,
		"acm.org":         0.85,
		"ieee.org":        0.85,
		"oecd.org":        0.85,
		"nber.org":        0.8,
		"brookings.edu":   0.8,
		"pewresearch.org": 0.8,
		"economist.com":   0.7,
		"hbr.org":         0.7,
		"mckinsey.com":    0.7,
		"weforum.org":     0.7,
	}
}

// DefaultTechnicalTerms is the domain vocabulary used for the
// technical-density bonus in content-quality scoring.
func DefaultTechnicalTerms() []string {
	return []string{
		"machine learning",
		"artificial intelligence",
		"automation",
		"neural network",
		"large language model",
		"deep learning",
		"algorithm",
		"generative",
		"productivity",
		"labor market",
		"workforce",
		"augmentation",
		"displacement",
		"robotics",
		"natural language processing",
		"foundation model",
		"fine-tuning",
		"inference",
	}
}

// DefaultCategoryKeywords lists the indicator keywords per workforce-impact
// category for the keyword classification strategy.
func DefaultCategoryKeywords() map[string][]string {
	return map[string][]string{
		"replace": {
			"replace", "replacement", "automate", "automation",
			"displace", "displacement", "job loss", "substitute",
			"obsolete", "redundant",
		},
		"augment": {
			"augment", "assist", "copilot", "collaboration",
			"productivity", "enhance", "support", "empower",
			"amplify", "accelerate",
		},
		"new_tasks": {
			"new role", "new job", "emerging", "job creation",
			"new skill", "reskill", "upskill", "transform",
			"transition", "occupation shift",
		},
		"human_only": {
			"human judgment", "empathy", "creativity", "ethics",
			"emotional", "interpersonal", "leadership", "trust",
			"care work", "craftsmanship",
		},
	}
}
