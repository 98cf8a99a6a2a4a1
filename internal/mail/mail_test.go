package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactMessageBody(t *testing.T) {
	msg := ContactMessage{
		Name:    "Bob",
		Email:   "bob@example.com",
		Phone:   "555-0100",
		Message: "hello there",
	}
	assert.Equal(t, "Name: Bob\nEmail: bob@example.com\nPhone: 555-0100\nMessage: hello there", msg.Body())
}

func TestContactMessageBodyEmptyPhone(t *testing.T) {
	msg := ContactMessage{Name: "Bob", Email: "bob@example.com", Message: "hi"}
	assert.Contains(t, msg.Body(), "Phone: \n")
}
