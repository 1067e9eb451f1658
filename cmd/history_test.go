package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/simwright/internal/domain"
	domainmocks "github.com/mouse-blink/simwright/internal/domain/mocks"
)

func TestHistoryCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newHistoryCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("History", mock.MatchedBy(func(args domain.HistoryArgs) bool {
		return args.File == "object.swc" && !args.ByTarget && !args.All
	})).Return(nil)

	cmd.SetArgs([]string{"history", "object.swc"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestHistoryCmd_TargetFilter(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newHistoryCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("History", mock.MatchedBy(func(args domain.HistoryArgs) bool {
		return args.ByTarget && args.Target == 0x1000 && args.All
	})).Return(nil)

	cmd.SetArgs([]string{"history", "object.swc", "--target", "0x1000", "--all"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestNewHistoryCmd(t *testing.T) {
	cmd := newHistoryCmd()

	assert.Equal(t, "history <container>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("target"))
	assert.NotNil(t, cmd.Flags().Lookup("all"))
}
