// Package bot routes chat commands and button presses to the lesson catalog,
// the EVM calculator, the session store, and the LLM gateway. It knows nothing
// about the transport; handlers take plain arguments and return Reply values.
package bot

import (
	"context"
	"log"
	"strconv"
	"strings"

	"pm-tutor-bot/internal/catalog"
	"pm-tutor-bot/internal/evm"
	"pm-tutor-bot/internal/store"
)

// DefaultTopic is assumed for any session that never picked one.
const DefaultTopic = "Foundations"

// CompletionGateway is the outbound boundary to the completion service.
// *llm.Gateway satisfies it.
type CompletionGateway interface {
	Quiz(ctx context.Context, topic string) (string, error)
	Answer(ctx context.Context, topic, question string) (string, error)
}

type Dispatcher struct {
	catalog  *catalog.Catalog
	sessions store.SessionStore
	// gateway is nil when no completion-service key is configured; every use
	// site checks before calling.
	gateway CompletionGateway
}

func NewDispatcher(cat *catalog.Catalog, sessions store.SessionStore, gateway CompletionGateway) *Dispatcher {
	return &Dispatcher{catalog: cat, sessions: sessions, gateway: gateway}
}

// currentTopic reads the session's topic, falling back to the default on a
// store error or a brand-new session. Store errors never reach the user.
func (d *Dispatcher) currentTopic(key string) string {
	topic, err := d.sessions.LastTopic(key)
	if err != nil {
		log.Printf("[session] failed to read topic for %s: %v", key, err)
		return DefaultTopic
	}
	if topic == "" {
		return DefaultTopic
	}
	return topic
}

func (d *Dispatcher) setTopic(key, topic string) {
	if err := d.sessions.SetLastTopic(key, topic); err != nil {
		log.Printf("[session] failed to save topic for %s: %v", key, err)
	}
}

// Start resets the session to the default topic and presents the main menu.
func (d *Dispatcher) Start(key string) Reply {
	d.setTopic(key, DefaultTopic)
	return Reply{
		Text: greetingText,
		Buttons: [][]Button{
			{
				{Label: "📘 Lessons", Data: dataMenuLessons},
				{Label: "📝 Quiz me", Data: dataMenuQuiz},
			},
			{
				{Label: "📐 EVM calc", Data: dataMenuEVM},
				{Label: "ℹ️ Scope", Data: dataMenuScope},
			},
		},
	}
}

// Scope describes what the tutor covers. No state change.
func (d *Dispatcher) Scope() Reply {
	return textReply(scopeText)
}

// Sources lists the cited standards. No state change.
func (d *Dispatcher) Sources() Reply {
	return textReply(sourcesText)
}

// Lesson handles "/lesson [topic]". An empty argument lists the topics; an
// unknown one reports it without touching the session.
func (d *Dispatcher) Lesson(key, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return textReply(lessonUsageText(d.catalog.Topics()))
	}
	canonical, ok := d.catalog.Canonical(arg)
	if !ok {
		return textReply(unknownTopicText(catalog.Normalize(arg), d.catalog.Topics()))
	}
	card, _ := d.catalog.Get(canonical)
	d.setTopic(key, canonical)
	return textReply(card)
}

// Quiz asks the gateway for a quiz on the session's current topic. Long
// completions are chunked for the transport.
func (d *Dispatcher) Quiz(ctx context.Context, key string) []Reply {
	if d.gateway == nil {
		return []Reply{textReply(quizNeedsKeyText)}
	}
	topic := d.currentTopic(key)
	text, err := d.gateway.Quiz(ctx, topic)
	if err != nil {
		log.Printf("[quiz] completion failed for topic %s: %v", topic, err)
		return []Reply{textReply(quizFailedText(err))}
	}
	return chunkReplies(text)
}

// Calc handles "/calc evm PV EV AC [BAC]". Bad input yields the usage text,
// never an error; the calculation itself is evm.Calc.
func (d *Dispatcher) Calc(args []string) Reply {
	if len(args) == 0 || !strings.EqualFold(args[0], "evm") {
		return textReply(calcUsageText)
	}
	nums := args[1:]
	if len(nums) != 3 && len(nums) != 4 {
		return textReply(calcUsageText)
	}
	parsed := make([]float64, len(nums))
	for i, raw := range nums {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return textReply(calcNumbersText)
		}
		parsed[i] = v
	}
	in := evm.Inputs{PV: parsed[0], EV: parsed[1], AC: parsed[2]}
	if len(parsed) == 4 {
		in.BAC = &parsed[3]
	}
	return textReply(evm.FormatReport(in, evm.Calc(in)))
}

// FreeText forwards a plain question through the gateway, annotated with the
// session's current topic.
func (d *Dispatcher) FreeText(ctx context.Context, key, text string) []Reply {
	if d.gateway == nil {
		return []Reply{textReply(answerNeedsKeyText)}
	}
	topic := d.currentTopic(key)
	answer, err := d.gateway.Answer(ctx, topic, strings.TrimSpace(text))
	if err != nil {
		log.Printf("[answer] completion failed for topic %s: %v", topic, err)
		return []Reply{textReply(answerFailedText(err))}
	}
	return chunkReplies(answer)
}

// HandleAction routes a decoded button press. The switch is exhaustive over
// the Action enum.
func (d *Dispatcher) HandleAction(ctx context.Context, key string, action Action) []Reply {
	switch action.Kind {
	case ActionMenuLessons:
		topics := d.catalog.Topics()
		rows := make([][]Button, 0, len(topics))
		for _, t := range topics {
			rows = append(rows, []Button{{Label: t, Data: lessonActionData(t)}})
		}
		return []Reply{{Text: pickLessonText, Buttons: rows}}
	case ActionLesson:
		return []Reply{d.Lesson(key, action.Topic)}
	case ActionMenuQuiz:
		return d.Quiz(ctx, key)
	case ActionMenuEVM:
		return []Reply{textReply(calcButtonText)}
	case ActionMenuScope:
		return []Reply{textReply(scopeButtonText)}
	default:
		return []Reply{textReply(unknownActionText)}
	}
}

func chunkReplies(text string) []Reply {
	chunks := SplitMessage(text, MaxMessageLen)
	replies := make([]Reply, 0, len(chunks))
	for _, c := range chunks {
		replies = append(replies, textReply(c))
	}
	return replies
}
