// Package mentor generates canned productivity advice. There is no
// model behind it: answers come from fixed tables, selected
// deterministically from the query text.
package mentor

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Query is one request for advice.
type Query struct {
	Text     string
	Tasks    []string
	Priority string
}

// Advisor produces advice for a query.
type Advisor interface {
	Advise(q Query) string
}

// NewCannedAdvisor returns the table-driven advisor.
func NewCannedAdvisor() Advisor {
	return &cannedAdvisor{}
}

type cannedAdvisor struct{}

// Advise answers a specific known question when the normalized text
// matches one exactly, otherwise falls back to a category response
// picked by hashing the text.
func (a *cannedAdvisor) Advise(q Query) string {
	normalized := strings.ToLower(strings.TrimSpace(q.Text))

	if answer, ok := specificAnswers[normalized]; ok {
		return a.answerSpecific(normalized, answer, q)
	}

	responses := categoryResponses[categorize(q.Text)]
	response := responses[hashText(q.Text)%uint32(len(responses))]

	if len(q.Tasks) > 0 {
		response += "\n\nRegarding your tasks: " + strings.Join(q.Tasks, ", ")
	}
	if q.Priority != "" {
		response += fmt.Sprintf("\n\nSince this is a %s priority task, make sure to allocate appropriate time and resources.", q.Priority)
	}
	return response
}

func (a *cannedAdvisor) answerSpecific(normalized, answer string, q Query) string {
	placeholder, wantsList := listPlaceholders[normalized]

	if len(q.Tasks) > 0 {
		switch normalized {
		case "how many tasks do i have today?":
			return strings.Replace(answer, "[number]", strconv.Itoa(len(q.Tasks)), 1)
		case "what's my highest priority task?":
			if len(q.Tasks) == 1 {
				return strings.Replace(answer, "[Task name].", q.Tasks[0]+".", 1)
			}
		default:
			if wantsList {
				return strings.Replace(answer, placeholder, taskList(q.Tasks)+".", 1)
			}
		}
	}

	if wantsList || listExpectingAnswer(normalized) {
		return "You have no tasks in this category."
	}
	return answer
}

func listExpectingAnswer(normalized string) bool {
	return normalized == "how many tasks do i have today?" ||
		normalized == "what's my highest priority task?"
}

func taskList(tasks []string) string {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString("\n- ")
		b.WriteString(t)
	}
	return b.String()
}

// categorize buckets free-form queries by keyword.
func categorize(text string) string {
	text = strings.ToLower(text)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("task", "todo", "schedule", "deadline", "complete"):
		return "task_management"
	case contains("productive", "efficient", "focus", "concentrate"):
		return "productivity"
	case contains("motivate", "motivation", "inspire", "encourage"):
		return "motivation"
	case contains("stress", "overwhelm", "anxiety", "pressure"):
		return "stress_management"
	}
	return "default"
}

// hashText gives a stable index source so the same query always gets
// the same response.
func hashText(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}
