package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	assert.Equal(t, "janedoe", Handle("Jane Doe"))
	assert.Equal(t, "janedoe", Handle("jane doe"))
	assert.Equal(t, "jane", Handle("Jane"))
	assert.Equal(t, "", Handle(""))
	assert.Equal(t, "annvanderlee", Handle("Ann van der Lee"))
}
