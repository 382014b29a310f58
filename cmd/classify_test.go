package cmd

import (
	"testing"

	"github.com/bgdnvk/campusbot/internal/intent"
)

func TestDescribe(t *testing.T) {
	classifier := intent.NewClassifier()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "ug syllabus wins over pg",
			message: "UG syllabus and PG syllabus",
			want:    "intent=ug_syllabus answer=local topics=none",
		},
		{
			name:    "holiday in hinglish",
			message: "chutti kab hai",
			want:    "intent=holiday answer=local topics=none",
		},
		{
			name:    "department with topics",
			message: "commerce department courses",
			want:    "intent=department answer=local topics=commerce",
		},
		{
			name:    "topic alone stays generic",
			message: "tell me about bca",
			want:    "intent=generic answer=remote topics=vocational",
		},
		{
			name:    "social science also matches science",
			message: "social science faculty",
			want:    "intent=generic answer=remote topics=social_science,science",
		},
		{
			name:    "plain question",
			message: "what are the fees",
			want:    "intent=generic answer=remote topics=none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(classifier.Classify(tt.message))
			if got != tt.want {
				t.Errorf("describe(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
