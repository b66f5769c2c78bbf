package bot

import "strings"

// ActionKind enumerates every interactive action the bot's buttons can carry.
// Callback data is decoded into this closed set once, at the transport
// boundary; everything after that matches on the enum.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMenuLessons
	ActionLesson
	ActionMenuQuiz
	ActionMenuEVM
	ActionMenuScope
)

// Action is a decoded button press. Topic is set only for ActionLesson.
type Action struct {
	Kind  ActionKind
	Topic string
}

const (
	dataMenuLessons  = "menu_lessons"
	dataMenuQuiz     = "menu_quiz"
	dataMenuEVM      = "menu_evm"
	dataMenuScope    = "menu_scope"
	dataLessonPrefix = "lesson_"
)

// ParseAction decodes an opaque callback identifier. Anything unrecognized
// maps to ActionUnknown rather than an error.
func ParseAction(data string) Action {
	switch data {
	case dataMenuLessons:
		return Action{Kind: ActionMenuLessons}
	case dataMenuQuiz:
		return Action{Kind: ActionMenuQuiz}
	case dataMenuEVM:
		return Action{Kind: ActionMenuEVM}
	case dataMenuScope:
		return Action{Kind: ActionMenuScope}
	}
	if topic, ok := strings.CutPrefix(data, dataLessonPrefix); ok && topic != "" {
		return Action{Kind: ActionLesson, Topic: topic}
	}
	return Action{Kind: ActionUnknown}
}

// lessonActionData encodes the callback identifier for a topic button.
func lessonActionData(topic string) string {
	return dataLessonPrefix + topic
}
