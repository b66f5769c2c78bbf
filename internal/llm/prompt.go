package llm

import "fmt"

// QuizPrompt builds the fixed quiz-generation template for a topic.
func QuizPrompt(topic string) string {
	return fmt.Sprintf(
		"Create 3 MCQs on %s. Format:\n"+
			"Q) ...\nA. ...\nB. ...\nC. ...\nD. ...\nAnswer: <letter> | Why: <1-2 lines>\n"+
			"Vary difficulty; include one numerical EVM if topic matches.",
		topic,
	)
}

// QuestionPrompt wraps a free-text question with the session's topic hint.
func QuestionPrompt(topic, question string) string {
	return fmt.Sprintf(
		"Topic hint: %s\nQuestion: %s\n"+
			"Reply with steps or a mini-table and add a short 'Sources:' line at the end.",
		topic, question,
	)
}
