package assistant

import _ "embed"

//go:embed prompts/advisor_v1.txt
var advisorPromptV1 string

//go:embed prompts/chat_v1.txt
var chatPromptV1 string

// AdvisorPrompt returns the system prompt for the market advisor.
func AdvisorPrompt() string {
	return advisorPromptV1
}

// ChatPrompt returns the system prompt for consumer questions.
func ChatPrompt() string {
	return chatPromptV1
}
