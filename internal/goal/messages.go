package goal

import (
	"strings"
	"unicode/utf8"
)

// Encouragement shown when a goal completes. Each entry leads with a
// decorative glyph that the UI renders separately from the body text.
var completionMessages = []string{
	"\U0001F44D Good Job!",
	"\U0001F60A Keep up the good work!",
	"\U0001F44D Great Job! That's quite the achievement!",
	"\U0001F60E Fantastic! You should be proud!",
	"\U0001F62E You made that look easy",
	"\U0001F60A Amazing work! You are accomplishing great things!",
}

type CompletionMessage struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

// PickCompletionMessage draws one message with the supplied index picker
// (pick receives the catalog size) and splits the leading glyph off.
func PickCompletionMessage(pick func(n int) int) CompletionMessage {
	raw := completionMessages[pick(len(completionMessages))]
	r, size := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError {
		return CompletionMessage{Text: raw}
	}
	return CompletionMessage{
		Emoji: string(r),
		Text:  strings.TrimSpace(raw[size:]),
	}
}
