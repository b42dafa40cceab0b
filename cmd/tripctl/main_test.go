package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := run("resolve", "Tokyo")
	require.NoError(t, err)
	assert.Contains(t, out, "airport: NRT")
	assert.Contains(t, out, "city:    TYO")
}

func TestResolveCommand_Unknown(t *testing.T) {
	_, err := run("resolve", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Atlantis"`)
}

func TestPlanCommand_RequiresDestination(t *testing.T) {
	_, err := run("plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination")
}

func TestPlanFlags_DaysOnlyWhenSet(t *testing.T) {
	cmd := planCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--destination", "Rome", "--interest", "food", "--interest", "art"}))

	var f planFlags
	f.destination, _ = cmd.Flags().GetString("destination")
	f.interests, _ = cmd.Flags().GetStringSlice("interest")
	req := f.request(cmd)
	assert.Nil(t, req.DurationDays)
	assert.Equal(t, []string{"food", "art"}, req.Interests)

	require.NoError(t, cmd.ParseFlags([]string{"--days", "3"}))
	f.days, _ = cmd.Flags().GetInt("days")
	req = f.request(cmd)
	require.NotNil(t, req.DurationDays)
	assert.Equal(t, 3, *req.DurationDays)
}
