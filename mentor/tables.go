package mentor

// categoryResponses holds the fallback advice pools per category.
var categoryResponses = map[string][]string{
	"task_management": {
		"Break down your task into smaller, manageable steps.",
		"Set specific deadlines for each subtask.",
		"Use the Pomodoro technique: work for 25 minutes, then take a 5-minute break.",
		"Prioritize your tasks using the Eisenhower Matrix.",
		"Create a daily to-do list and review it each morning.",
	},
	"productivity": {
		"Eliminate distractions by using focus mode on your devices.",
		"Schedule your most important tasks during your peak productivity hours.",
		"Take regular breaks to maintain focus and prevent burnout.",
		"Use time-blocking to dedicate specific hours to specific tasks.",
		"Review your progress at the end of each day.",
	},
	"motivation": {
		"Remember your 'why' - the reason you started this task.",
		"Celebrate small wins along the way.",
		"Visualize the end result and how it will benefit you.",
		"Find an accountability partner to keep you on track.",
		"Break through resistance by starting with the easiest part of the task.",
	},
	"stress_management": {
		"Practice deep breathing exercises when feeling overwhelmed.",
		"Take short breaks to stretch and move around.",
		"Break large tasks into smaller, more manageable pieces.",
		"Use the 2-minute rule: if a task takes less than 2 minutes, do it immediately.",
		"Maintain a healthy work-life balance.",
	},
	"default": {
		"I understand you're looking for guidance. Could you provide more specific details about your situation?",
		"That's an interesting question. Let me help you break this down into actionable steps.",
		"I'd be happy to help you with that. What specific aspects would you like to focus on?",
		"Let's approach this systematically. What's the first step you'd like to take?",
		"I can provide some suggestions. What's your current progress on this?",
	},
}

// specificAnswers maps exact normalized questions to canned answers.
var specificAnswers = map[string]string{
	"what's on my to-do list today?":              "Here are your tasks for today: [List today's tasks].",
	"what are my pending tasks?":                  "These tasks are still pending: [List of incomplete tasks].",
	"do i have any tasks due tomorrow?":           "Yes, here are the tasks due tomorrow: [List of tomorrow's tasks].",
	"what tasks are due this week?":               "These tasks are scheduled for this week: [Weekly tasks list].",
	"show me my completed tasks.":                 "Here are the tasks you've completed: [List of completed tasks].",
	"what's overdue?":                             "The following tasks are overdue: [List of overdue tasks].",
	"how many tasks do i have today?":             "You have [number] tasks scheduled for today.",
	"what's my highest priority task?":            "Your top priority task is: [Task name].",
	"can you sort my tasks by priority?":          "Sure! Here is your task list sorted by priority: [Sorted task list].",
	"what are my personal tasks?":                 "These are your personal tasks: [List of personal tasks].",
	"add a task to my list.":                      "Please enter the task name and details. I'll add it right away.",
	"mark this task as complete.":                 "Got it! The task is now marked as complete.",
	"delete a task.":                              "The task has been deleted successfully.",
	"edit a task.":                                "Please tell me what you want to change.",
	"set a due date for this task.":               "Enter the due date, and I'll set it for you.",
	"move this task to tomorrow.":                 "The task is now scheduled for tomorrow.",
	"set a reminder for this task.":               "When would you like to be reminded?",
	"add notes to this task.":                     "What note would you like to add?",
	"prioritize this task.":                       "The task has been marked as high priority.",
	"assign this task to someone.":                "Who would you like to assign it to?",
	"what tasks are due today?":                   "These are your tasks for today: [List today's tasks].",
	"what tasks are due this weekend?":            "Here are the weekend tasks: [List of weekend tasks].",
	"what are my upcoming tasks?":                 "Here are your upcoming tasks: [List of tasks with future due dates].",
	"do i have any tasks for next week?":          "Yes, here are your tasks for next week: [List].",
	"show me tasks for monday.":                   "These are your tasks for Monday: [List].",
	"remind me tomorrow about this task.":         "Reminder set for tomorrow.",
	"what tasks are overdue?":                     "You have these overdue tasks: [List].",
	"what's my schedule for today?":               "Your schedule today includes: [Timeline or list of tasks].",
	"what's my weekly agenda?":                    "Here's your agenda for the week: [List of tasks with days].",
	"what's due in the next 3 days?":              "These tasks are due in the next 3 days: [List].",
	"suggest a task i can do in 5 minutes.":       "Try this quick task: [Short task suggestion].",
	"what task should i do first?":                "Start with your highest priority task: [Task name].",
	"what's the most urgent thing right now?":     "This task needs your immediate attention: [Urgent task].",
	"help me focus.":                              "I've enabled Focus Mode. Let's work on one task at a time.",
	"hide all completed tasks.":                   "Done! Only active tasks are now visible.",
	"break this task into subtasks.":              "Please list the subtasks.",
	"start a pomodoro timer.":                     "Pomodoro timer started: 25 minutes focus.",
	"what's my progress today?":                   "You've completed [X] out of [Y] tasks today.",
	"how can i be more productive?":               "Try time blocking and focus on one task at a time.",
	"suggest a daily habit to add.":               "Consider adding \"Plan tomorrow today\" or \"15 min daily reflection.\"",
	"make this a daily task.":                     "Done! This task now repeats daily.",
	"repeat this task weekly.":                    "Task will now repeat every week.",
	"how do i stop recurring tasks?":              "Open task settings and turn off repeat.",
	"what are my recurring tasks?":                "Here are your repeating tasks: [List].",
	"set a task to repeat every monday.":          "Task set to repeat every Monday.",
	"create a task that repeats every month.":     "Task will now repeat monthly.",
	"can i set a yearly reminder?":                "Yes, your reminder is now set yearly.",
	"show me all my repeating tasks.":             "Here is a list of all recurring tasks: [List].",
	"edit recurrence for this task.":              "Please select the new repeat interval.",
	"turn off repeat for this task.":              "Repeating is now turned off for this task.",
	"add this to my work list.":                   "The task has been added to your Work list.",
	"show me personal tasks.":                     "Here are your personal tasks: [List].",
	"show me tasks in the shopping list.":         "Your shopping tasks are: [List].",
	"move this to another category.":              "Which category do you want to move it to?",
	"create a new list.":                          "What should the new list be called?",
	"delete this list.":                           "Are you sure? The list has been deleted.",
	"rename this list.":                           "What would you like to rename it to?",
	"what are the categories i have?":             "You currently have these categories: [List].",
	"add a task to the \"weekend\" list.":         "Task added to your Weekend list.",
	"show me only high-priority tasks.":           "These are your high-priority tasks: [List].",
	"remind me to buy groceries at 5 pm.":         "Reminder set for 5 PM today.",
	"notify me when this is due.":                 "Notification will be sent at the due time.",
	"set a location-based reminder.":              "Please enter the location.",
	"can i get a daily summary?":                  "Daily summaries will now be sent each morning.",
	"send me a reminder 10 mins before the task.": "Reminder set for 10 minutes before the task.",
	"turn off notifications for this task.":       "Notifications are now disabled for this task.",
	"what reminders do i have today?":             "You have these reminders scheduled today: [List].",
	"clear all reminders.":                        "All reminders have been cleared.",
	"delay reminder for this task.":               "How long would you like to delay it?",
	"remind me again in 1 hour.":                  "Got it! I'll remind you again in 1 hour.",
	"what can you do?":                            "I can help you manage tasks, set reminders, boost productivity, and organize your day.",
	"help me manage my tasks.":                    "Sure! Let's review your tasks and organize them by priority.",
	"can you organize my to-do list?":             "I can sort tasks by date, priority, or category. Which one would you like?",
	"can you suggest a better schedule?":          "Try focusing on 3 major tasks per day and schedule breaks in between.",
	"what's the best time to do this?":            "Based on urgency and your schedule, try doing it [Suggested time].",
	"can you help me plan my day?":                "Sure! Let's divide your day into focus blocks.",
	"what's the first task i should do?":          "Start with your most important or urgent task.",
	"can you prioritize my tasks?":                "Tasks are now sorted by priority: [List].",
	"how do i use this app?":                      "You can add, edit, prioritize tasks, and set reminders. Want a quick tutorial?",
	"what are some productivity tips?":            "Use time blocking, set priorities, and avoid multitasking.",
	"assign this to john.":                        "Task has been assigned to John.",
	"share my task list with my team.":            "Your task list has been shared with your team.",
	"who is assigned to this task?":               "This task is currently assigned to: [Name].",
	"can i see team tasks?":                       "Here are all tasks assigned to the team: [List].",
	"notify my team about this task.":             "Notification sent to your team.",
	"add a comment for john.":                     "What comment would you like to leave?",
	"show tasks assigned to others.":              "These are tasks assigned to your team: [List].",
	"what's the team working on today?":           "Your team is working on: [List of tasks].",
	"can we collaborate on this task?":            "Yes! Collaboration is enabled.",
	"add a shared checklist.":                     "Shared checklist created. You can now collaborate on this task.",
}

// listPlaceholders names, for questions answered with the caller's
// task list, the placeholder in the canned answer to substitute.
var listPlaceholders = map[string]string{
	"what's on my to-do list today?":      "[List today's tasks].",
	"what are my pending tasks?":          "[List of incomplete tasks].",
	"do i have any tasks due tomorrow?":   "[List of tomorrow's tasks].",
	"what tasks are due this week?":       "[Weekly tasks list].",
	"show me my completed tasks.":         "[List of completed tasks].",
	"what's overdue?":                     "[List of overdue tasks].",
	"can you sort my tasks by priority?":  "[Sorted task list].",
	"what are my personal tasks?":         "[List of personal tasks].",
	"what tasks are due today?":           "[List today's tasks].",
	"what tasks are due this weekend?":    "[List of weekend tasks].",
	"what are my upcoming tasks?":         "[List of tasks with future due dates].",
	"do i have any tasks for next week?":  "[List].",
	"show me tasks for monday.":           "[List].",
	"what tasks are overdue?":             "[List].",
	"what's my schedule for today?":       "[Timeline or list of tasks].",
	"what's my weekly agenda?":            "[List of tasks with days].",
	"what's due in the next 3 days?":      "[List].",
	"what are my recurring tasks?":        "[List].",
	"show me all my repeating tasks.":     "[List].",
	"show me personal tasks.":             "[List].",
	"show me tasks in the shopping list.": "[List].",
	"what are the categories i have?":     "[List].",
	"show me only high-priority tasks.":   "[List].",
}
