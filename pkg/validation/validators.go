package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, digits, spaces and the punctuation found in company names: . ' - / & ( ) , +
	companyNameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+-]+$`)
)

var (
	interviewTypes         = map[string]bool{"technical": true, "behavioral": true, "system-design": true}
	calendarInterviewTypes = map[string]bool{"technical": true, "behavioral": true, "system-design": true, "mixed": true}
	voteTypes              = map[string]bool{"up": true, "down": true}
	questionTypes          = map[string]bool{"technical": true, "behavioral": true, "system-design": true, "coding": true, "other": true}
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("interview_type", enumValidator(interviewTypes))
	_ = v.RegisterValidation("calendar_interview_type", enumValidator(calendarInterviewTypes))
	_ = v.RegisterValidation("vote_type", enumValidator(voteTypes))
	_ = v.RegisterValidation("question_type", enumValidator(questionTypes))
	_ = v.RegisterValidation("company_name", CompanyName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// enumValidator accepts empty values; combine with required when needed
func enumValidator(allowed map[string]bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		return allowed[val]
	}
}

// CompanyName validates a company name
func CompanyName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return companyNameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
