package intent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-school-insights/intent"
)

func TestClassify(t *testing.T) {
	c := intent.New()

	tests := []struct {
		name string
		text string
		want intent.Intent
	}{
		{"student performance", "show student performance", intent.StudentReport},
		{"teacher", "list the teachers", intent.TeacherReport},
		{"revenue", "what is next month revenue", intent.PaymentReport},
		{"payment", "payments overview", intent.PaymentReport},
		{"no keyword", "hello", intent.Unknown},
		{"empty", "", intent.Unknown},
		{"student without performance", "student list", intent.Unknown},
		{"student rule wins over teacher", "teacher and student performance", intent.StudentReport},
		{"teacher wins over payment", "teacher payment", intent.TeacherReport},
		{"upper case", "SHOW STUDENT PERFORMANCE", intent.StudentReport},
		{"punctuation", "Teacher's schedule?!", intent.TeacherReport},
		{"fullwidth letters", "ｒｅｖｅｎｕｅ", intent.PaymentReport},
		{"substring match", "studentperformance", intent.StudentReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestNormalise(t *testing.T) {
	require.Equal(t, "hello world 42", intent.Normalise("  Hello,   WORLD!! 42 "))
	require.Equal(t, "", intent.Normalise("?!..."))
	require.Equal(t, "café", intent.Normalise("CAFÉ"))
}

func TestCustomRules(t *testing.T) {
	c := intent.New(intent.Rule{Intent: "attendance_report", Any: []string{"absent", "attendance"}})

	require.Equal(t, intent.Intent("attendance_report"), c.Classify("Who was absent today"))
	require.Equal(t, intent.Unknown, c.Classify("show student performance"))
}
