package skill

import "fmt"

const audioTicking = "<audio src='https://s3.amazonaws.com/ask-soundlibrary/foley/amzn_sfx_rhythmic_ticking_30s_01.mp3'/>"

const (
	speechWelcome = "Welcome to the Gadgets Test Skill. " +
		"Press your Echo Buttons to change the colors of the lights. " + audioTicking
	speechHelp = "Welcome to the Gadgets Test Skill. " +
		"Press your Echo Buttons to change the lights. " + audioTicking
	speechGoodbye        = "Thank you for using the Gadgets Test Skill. Goodbye."
	speechTimeoutGoodbye = "Thank you for using the Gadgets Test Skill.  Goodbye."
	speechNoButtons      = "I didn't detect any buttons. " +
		"You must have at least one Echo Button to use this skill.  Goodbye."
	speechDefault = "Sorry, I didn't get that. " +
		"Please press your Echo Buttons to change the color of the lights. " + audioTicking
	speechError = "Sorry, there was some problem. Please try again!!"
)

func speechNewButton(n int) string {
	return fmt.Sprintf("Hello button %d. Good to see you. %s", n, audioTicking)
}
