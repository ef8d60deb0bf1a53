package loop

import (
	"strings"

	"github.com/tomz197/valentine-dash/internal/level"
)

// Overlay texts.
const (
	introBody = "Collect all hearts before time runs out. Avoid thorny roses — they cost time!"

	helpTitle = "How to play"
	HelpBody  = "Move with WASD/Arrow Keys. Collect all hearts before the timer hits zero. " +
		"Touch controls appear on phones. Avoid thorny roses — they cost time!"

	winTitle  = "You did it! 💘"
	loseTitle = "Time's up 💔"
	loseBody  = "One more try — the hearts are waiting!"
)

// Primary button labels.
const (
	LabelStart     = "Start"
	LabelNextLevel = "Next Level"
	LabelPlayAgain = "Play again"
	LabelTryAgain  = "Try again"
)

func levelClearedBody(title string) string {
	return title + " Complete! 💘\n\nReady for the next challenge?"
}

// finalWinBody joins the win message, signature and share hint with blank
// lines, skipping empty parts.
func finalWinBody(msgs level.Messages, shareHint string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{msgs.Win, msgs.Signature, shareHint} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}
