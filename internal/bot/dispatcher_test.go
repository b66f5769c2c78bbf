package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-tutor-bot/internal/catalog"
	"pm-tutor-bot/internal/store"
)

// fakeGateway records the last topic/question it saw and returns canned output.
type fakeGateway struct {
	quizText   string
	answerText string
	err        error
	lastTopic  string
	lastQ      string
}

func (f *fakeGateway) Quiz(_ context.Context, topic string) (string, error) {
	f.lastTopic = topic
	return f.quizText, f.err
}

func (f *fakeGateway) Answer(_ context.Context, topic, question string) (string, error) {
	f.lastTopic = topic
	f.lastQ = question
	return f.answerText, f.err
}

func newTestDispatcher(t *testing.T, gw CompletionGateway) (*Dispatcher, *store.MemoryStore) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	sessions := store.NewMemoryStore()
	return NewDispatcher(cat, sessions, gw), sessions
}

func TestStartResetsTopicAndShowsMenu(t *testing.T) {
	d, sessions := newTestDispatcher(t, nil)
	require.NoError(t, sessions.SetLastTopic("chat-1", "Risk"))

	reply := d.Start("chat-1")
	assert.Contains(t, reply.Text, "Project-Management tutor")
	require.Len(t, reply.Buttons, 2)
	assert.Len(t, reply.Buttons[0], 2)
	assert.Len(t, reply.Buttons[1], 2)

	var datas []string
	for _, row := range reply.Buttons {
		for _, b := range row {
			datas = append(datas, b.Data)
		}
	}
	assert.Equal(t, []string{"menu_lessons", "menu_quiz", "menu_evm", "menu_scope"}, datas)

	topic, err := sessions.LastTopic("chat-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, topic)
}

func TestScopeAndSources(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	assert.Contains(t, d.Scope().Text, "PM life cycle")
	assert.Contains(t, d.Scope().Text, "/calc evm 200000 180000 220000 500000")
	assert.Contains(t, d.Sources().Text, "PMBOK® Guide – Seventh Edition")
	assert.Contains(t, d.Sources().Text, "Scrum Guide 2020")
}

func TestLessonNoArgumentListsTopics(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	reply := d.Lesson("chat-1", "")
	assert.Contains(t, reply.Text, "Please choose a topic:")
	assert.Contains(t, reply.Text, "Foundations, Planning, Risk, Delivery, EVM, Agile, Stakeholders")
}

func TestLessonValidTopicUpdatesSession(t *testing.T) {
	d, sessions := newTestDispatcher(t, nil)
	reply := d.Lesson("chat-1", "planning")
	assert.Contains(t, reply.Text, "Planning Essentials")

	topic, err := sessions.LastTopic("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "Planning", topic)
}

func TestLessonUnknownTopicKeepsSession(t *testing.T) {
	d, sessions := newTestDispatcher(t, nil)
	require.NoError(t, sessions.SetLastTopic("chat-1", "Risk"))

	reply := d.Lesson("chat-1", "Budgeting")
	assert.Contains(t, reply.Text, "Unknown topic 'Budgeting'.")
	assert.Contains(t, reply.Text, "Foundations, Planning, Risk, Delivery, EVM, Agile, Stakeholders")

	topic, err := sessions.LastTopic("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "Risk", topic)
}

func TestQuizWithoutGateway(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	replies := d.Quiz(context.Background(), "chat-1")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Ask your admin to set OPENAI_API_KEY")
}

func TestQuizUsesSessionTopic(t *testing.T) {
	gw := &fakeGateway{quizText: "Q) ..."}
	d, sessions := newTestDispatcher(t, gw)
	require.NoError(t, sessions.SetLastTopic("chat-1", "EVM"))

	replies := d.Quiz(context.Background(), "chat-1")
	require.Len(t, replies, 1)
	assert.Equal(t, "Q) ...", replies[0].Text)
	assert.Equal(t, "EVM", gw.lastTopic)
}

func TestQuizDefaultsToFoundations(t *testing.T) {
	gw := &fakeGateway{quizText: "Q) ..."}
	d, _ := newTestDispatcher(t, gw)
	d.Quiz(context.Background(), "brand-new-user")
	assert.Equal(t, DefaultTopic, gw.lastTopic)
}

func TestQuizGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("rate limited")}
	d, _ := newTestDispatcher(t, gw)
	replies := d.Quiz(context.Background(), "chat-1")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Sorry, quiz failed:")
	assert.Contains(t, replies[0].Text, "rate limited")
}

func TestCalc(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "full example",
			args: []string{"evm", "200000", "180000", "220000", "500000"},
			want: []string{"PV=200,000, EV=180,000, AC=220,000, BAC=500,000", "SPI = EV/PV = 0.90", "CPI = EV/AC = 0.82", "EAC ≈ "},
		},
		{
			name: "no BAC",
			args: []string{"evm", "100", "80", "90"},
			want: []string{"SPI = EV/PV = 0.80", "CPI = EV/AC = 0.89"},
		},
		{
			name: "zero PV gives n/a",
			args: []string{"evm", "0", "50", "100"},
			want: []string{"SPI = EV/PV = n/a", "CPI = EV/AC = 0.50"},
		},
		{
			name: "missing subcommand",
			args: []string{"200000", "180000", "220000"},
			want: []string{"Usage: /calc evm PV EV AC [BAC]"},
		},
		{
			name: "too few numbers",
			args: []string{"evm", "1", "2"},
			want: []string{"Usage: /calc evm PV EV AC [BAC]"},
		},
		{
			name: "too many numbers",
			args: []string{"evm", "1", "2", "3", "4", "5"},
			want: []string{"Usage: /calc evm PV EV AC [BAC]"},
		},
		{
			name: "no args",
			args: nil,
			want: []string{"Usage: /calc evm PV EV AC [BAC]"},
		},
		{
			name: "non-numeric argument",
			args: []string{"evm", "a", "b", "c"},
			want: []string{"Please provide numbers."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Calc(tt.args)
			for _, want := range tt.want {
				assert.Contains(t, reply.Text, want)
			}
		})
	}
}

func TestFreeTextWithoutGateway(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	replies := d.FreeText(context.Background(), "chat-1", "How to build a WBS?")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "I need an AI key")
}

func TestFreeTextUsesTopicHint(t *testing.T) {
	gw := &fakeGateway{answerText: "Start with deliverables."}
	d, sessions := newTestDispatcher(t, gw)
	require.NoError(t, sessions.SetLastTopic("chat-1", "Planning"))

	replies := d.FreeText(context.Background(), "chat-1", " How to build a WBS? ")
	require.Len(t, replies, 1)
	assert.Equal(t, "Start with deliverables.", replies[0].Text)
	assert.Equal(t, "Planning", gw.lastTopic)
	assert.Equal(t, "How to build a WBS?", gw.lastQ)
}

func TestFreeTextChunksLongAnswers(t *testing.T) {
	long := strings.Repeat("x", MaxMessageLen*2+5)
	gw := &fakeGateway{answerText: long}
	d, _ := newTestDispatcher(t, gw)

	replies := d.FreeText(context.Background(), "chat-1", "question")
	require.Len(t, replies, 3)
	var joined strings.Builder
	for _, r := range replies {
		assert.LessOrEqual(t, len(r.Text), MaxMessageLen)
		joined.WriteString(r.Text)
	}
	assert.Equal(t, long, joined.String())
}

func TestFreeTextGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection reset")}
	d, _ := newTestDispatcher(t, gw)
	replies := d.FreeText(context.Background(), "chat-1", "question")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Sorry, I couldn't answer:")
	assert.Contains(t, replies[0].Text, "connection reset")
}

func TestHandleActionMenuLessons(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	replies := d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionMenuLessons})
	require.Len(t, replies, 1)
	assert.Equal(t, "Pick a lesson:", replies[0].Text)
	require.Len(t, replies[0].Buttons, 7)
	assert.Equal(t, "Foundations", replies[0].Buttons[0][0].Label)
	assert.Equal(t, "lesson_Foundations", replies[0].Buttons[0][0].Data)
	assert.Equal(t, "lesson_Stakeholders", replies[0].Buttons[6][0].Data)
}

func TestHandleActionLessonMirrorsCommand(t *testing.T) {
	d, sessions := newTestDispatcher(t, nil)
	replies := d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionLesson, Topic: "EVM"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "EVM Fast Track")

	topic, err := sessions.LastTopic("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "EVM", topic)
}

func TestHandleActionEVMAndScope(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)

	replies := d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionMenuEVM})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Use: /calc evm PV EV AC [BAC]")

	replies = d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionMenuScope})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Scope: PM life cycle")
}

func TestHandleActionQuiz(t *testing.T) {
	gw := &fakeGateway{quizText: "Q) ..."}
	d, _ := newTestDispatcher(t, gw)
	replies := d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionMenuQuiz})
	require.Len(t, replies, 1)
	assert.Equal(t, "Q) ...", replies[0].Text)
	assert.Equal(t, DefaultTopic, gw.lastTopic)
}

func TestHandleActionUnknown(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	replies := d.HandleAction(context.Background(), "chat-1", Action{Kind: ActionUnknown})
	require.Len(t, replies, 1)
	assert.Equal(t, "Unknown action.", replies[0].Text)
}

// failingStore always errors; the dispatcher must fall back to the default
// topic and keep serving.
type failingStore struct{}

func (failingStore) LastTopic(string) (string, error)  { return "", errors.New("db down") }
func (failingStore) SetLastTopic(string, string) error { return errors.New("db down") }

func TestStoreFailureFallsBackToDefault(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	gw := &fakeGateway{quizText: "Q) ..."}
	d := NewDispatcher(cat, failingStore{}, gw)

	replies := d.Quiz(context.Background(), "chat-1")
	require.Len(t, replies, 1)
	assert.Equal(t, "Q) ...", replies[0].Text)
	assert.Equal(t, DefaultTopic, gw.lastTopic)

	// Lesson still returns the card even though the topic cannot be saved.
	reply := d.Lesson("chat-1", "Risk")
	assert.Contains(t, reply.Text, "Risk & Quality")
}
