package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/main_agent.txt
	mainAgentRaw string

	//go:embed template/exit_advisor.txt
	exitAdvisorRaw string

	//go:embed template/exit_message.txt
	exitMessageRaw string

	//go:embed template/screener.txt
	screenerRaw string

	//go:embed template/info_advisor.txt
	infoAdvisorRaw string

	//go:embed template/scheduling_intent.txt
	schedulingIntentRaw string

	//go:embed template/job_description.txt
	jobDescriptionRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	MainAgent        string
	ExitAdvisor      string
	ExitMessage      string
	Screener         string
	InfoAdvisor      string
	SchedulingIntent string
	JobDescription   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		MainAgent:        strings.TrimSpace(mainAgentRaw),
		ExitAdvisor:      strings.TrimSpace(exitAdvisorRaw),
		ExitMessage:      strings.TrimSpace(exitMessageRaw),
		Screener:         strings.TrimSpace(screenerRaw),
		InfoAdvisor:      strings.TrimSpace(infoAdvisorRaw),
		SchedulingIntent: strings.TrimSpace(schedulingIntentRaw),
		JobDescription:   strings.TrimSpace(jobDescriptionRaw),
	}
}
