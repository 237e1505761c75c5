package validation_test

import (
	"testing"

	"intervyo-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	InterviewType string `validate:"required,interview_type"`
	VoteType      string `validate:"omitempty,vote_type"`
	Company       string `validate:"omitempty,company_name,no_emoji"`
	Notes         string `validate:"max=5"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestCustomTags(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{"valid", sample{InterviewType: "system-design", VoteType: "up", Company: "AT&T"}, false},
		{"unknown interview type", sample{InterviewType: "mixed"}, true},
		{"unknown vote", sample{InterviewType: "technical", VoteType: "sideways"}, true},
		{"emoji in company", sample{InterviewType: "technical", Company: "Google 🚀"}, true},
		{"bad company characters", sample{InterviewType: "technical", Company: "Acme<script>"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()

	err := v.Struct(sample{VoteType: "sideways", Notes: "too long"})
	msgs := validation.FormatValidationErrors(err)

	assert.Contains(t, msgs, "Interview type: is required")
	assert.Contains(t, msgs, "Vote type: must be up or down")
	assert.Contains(t, msgs, "Notes: must be at most 5 characters")
}

func TestFormatValidationErrorsPassesThroughOtherErrors(t *testing.T) {
	msgs := validation.FormatValidationErrors(assert.AnError)
	assert.Equal(t, []string{assert.AnError.Error()}, msgs)
}
