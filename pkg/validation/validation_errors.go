package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Buddy
	"BuddyID":       "Buddy",
	"TargetCompany": "Target company",
	"TargetRole":    "Target role",
	"ScheduledDate": "Scheduled date",
	"Duration":      "Duration",
	"InterviewType": "Interview type",
	"MaxMembers":    "Max members",
	"FocusAreas":    "Focus areas",

	// Calendar
	"InterviewDate": "Interview date",
	"Role":          "Role",
	"PracticesDone": "Practices done",

	// Questions
	"Question":          "Question",
	"QuestionType":      "Question type",
	"Company":           "Company",
	"InterviewRound":    "Interview round",
	"ExpectedDuration":  "Expected duration",
	"FollowUpQuestions": "Follow-up questions",
	"VoteType":          "Vote type",
	"Reason":            "Reason",

	// Shared
	"Name":        "Name",
	"Description": "Description",
	"Tags":        "Tags",
	"Notes":       "Notes",
}

// FormatValidationErrors converts validator.ValidationErrors to user-facing messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at least %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at most %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "uuid", "uuid4":
		return fmt.Sprintf("%s: must be a valid id", label)

	case "interview_type":
		return fmt.Sprintf("%s: must be one of: technical, behavioral, system-design", label)

	case "calendar_interview_type":
		return fmt.Sprintf("%s: must be one of: technical, behavioral, system-design, mixed", label)

	case "vote_type":
		return fmt.Sprintf("%s: must be up or down", label)

	case "question_type":
		return fmt.Sprintf("%s: must be one of: technical, behavioral, system-design, coding, other", label)

	case "company_name":
		return fmt.Sprintf("%s: may only contain letters, digits, spaces and common punctuation", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
