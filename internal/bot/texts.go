package bot

import (
	"fmt"
	"strings"
)

// Static reply texts. These are fixed content, not derived at runtime.

const greetingText = "Hi! I’m your Project-Management tutor. Ask a question (e.g., “How to build a WBS?”) " +
	"or use the buttons below."

const scopeText = "I cover PM life cycle, governance, planning (scope/schedule/cost/risk/quality), " +
	"delivery control (baselines, change), EVM, agile & hybrid, procurement, comms, stakeholders.\n" +
	"Use /lesson <Foundations|Planning|Risk|Delivery|EVM|Agile|Stakeholders>\n" +
	"Try /calc evm 200000 180000 220000 500000"

const sourcesText = "Sources I cite:\n" +
	"• PMBOK® Guide – Seventh Edition (your summaries/notes)\n" +
	"• ISO 21502:2020 (your notes)\n" +
	"• PRINCE2® 2017/2023 (your notes)\n" +
	"• Scrum Guide 2020 (concepts)"

const calcUsageText = "Usage: /calc evm PV EV AC [BAC]\nExample: /calc evm 200000 180000 220000 500000"

const calcButtonText = "Use: /calc evm PV EV AC [BAC]\nExample: /calc evm 200000 180000 220000 500000"

const calcNumbersText = "Please provide numbers. Example: /calc evm 200000 180000 220000 500000"

const quizNeedsKeyText = "Quiz feature needs the AI key. Ask your admin to set OPENAI_API_KEY."

const answerNeedsKeyText = "I need an AI key to answer in detail. Ask your admin to set OPENAI_API_KEY."

const pickLessonText = "Pick a lesson:"

const scopeButtonText = "Scope: PM life cycle, governance, planning, delivery control, EVM, agile & hybrid, " +
	"procurement, comms, stakeholders.\n" +
	"Try /lesson Foundations or ask: “How to run change control?”"

const unknownActionText = "Unknown action."

func lessonUsageText(topics []string) string {
	return "Please choose a topic: " + strings.Join(topics, ", ") + "\nExample: /lesson Planning"
}

func unknownTopicText(topic string, topics []string) string {
	return fmt.Sprintf("Unknown topic '%s'. Choose one of: %s", topic, strings.Join(topics, ", "))
}

func quizFailedText(err error) string {
	return fmt.Sprintf("Sorry, quiz failed: %v", err)
}

func answerFailedText(err error) string {
	return fmt.Sprintf("Sorry, I couldn't answer: %v", err)
}
