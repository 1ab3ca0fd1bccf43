package auth

import (
	"testing"

	"lostfound-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	item := models.Item{StudentNumber: "S12345", Password: "hunter2"}

	tests := []struct {
		name          string
		studentNumber string
		password      string
		want          bool
	}{
		{"exact match", "S12345", "hunter2", true},
		{"wrong password", "S12345", "letmein", false},
		{"wrong student number", "S99999", "hunter2", false},
		{"both wrong", "S99999", "letmein", false},
		{"both empty", "", "", false},
		{"case differs", "s12345", "hunter2", false},
		{"trailing space", "S12345", "hunter2 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(item, tt.studentNumber, tt.password))
		})
	}
}
