package sentiment

// Lexicon holds the three word lists a Classifier scores against. It is an
// immutable configuration value: construct once, pass to NewClassifier.
// Matching is case-insensitive and whole-word against whitespace-split tokens.
type Lexicon struct {
	Positive []string
	Negative []string
	Neutral  []string
}

// DefaultLexicon returns the built-in Portuguese word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"feliz", "alegre", "bom", "ótimo", "excelente", "maravilhoso",
			"incrível", "fantástico", "perfeito", "amor", "sucesso",
			"vitória", "conquista", "gratidão", "grato", "sorte", "benção",
		},
		Negative: []string{
			"triste", "ruim", "péssimo", "terrível", "horrível", "odiar",
			"raiva", "frustração", "decepção", "fracasso", "problema",
			"dificuldade", "preocupação", "medo", "ansiedade", "estresse",
		},
		Neutral: []string{
			"talvez", "pode", "normal", "regular", "comum", "simples",
		},
	}
}
