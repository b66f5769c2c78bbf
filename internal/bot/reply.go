package bot

// Button is one inline button: a label the user sees and the opaque action
// data sent back when pressed.
type Button struct {
	Label string
	Data  string
}

// Reply is a transport-neutral outbound message. Buttons, when present, are
// rows of an inline keyboard.
type Reply struct {
	Text    string
	Buttons [][]Button
}

func textReply(text string) Reply {
	return Reply{Text: text}
}
