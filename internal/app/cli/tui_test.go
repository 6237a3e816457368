package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lens/internal/app/server"
)

func Test_NewTUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tuiInstance := NewTUI(server.NewMockClient(ctrl))

	assert.NotNil(t, tuiInstance)
	assert.Implements(t, (*TUI)(nil), tuiInstance)
}
