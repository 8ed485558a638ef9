package pattern_test

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/pattern"
)

func TestNewParserFromFile(t *testing.T) {
	p, err := pattern.NewParserFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	tests := []struct {
		name       string
		line       string
		wantKind   mcvisor.EventKind
		wantPlayer string
		wantKiller string
		wantText   string
	}{
		{
			name:       "plugin join",
			line:       "[10:00:00] [Server thread/INFO]: Steve has joined the server",
			wantKind:   mcvisor.EventLogin,
			wantPlayer: "Steve",
		},
		{
			name:       "plugin quit",
			line:       "[10:00:00] [Server thread/INFO]: Steve has left the server",
			wantKind:   mcvisor.EventLogout,
			wantPlayer: "Steve",
		},
		{
			name:       "proxy chat",
			line:       "[10:00:00] [Server thread/INFO]: [lobby] Alex: anyone here?",
			wantKind:   mcvisor.EventChat,
			wantPlayer: "Alex",
			wantText:   "anyone here?",
		},
		{
			name:       "modded death",
			line:       "[10:00:00] [Server thread/INFO]: Steve was vaporized by Turret",
			wantKind:   mcvisor.EventDeath,
			wantPlayer: "Steve",
			wantKiller: "Turret",
		},
		{
			name:       "vanilla still works",
			line:       "[10:00:00] [Server thread/INFO]: Steve joined the game",
			wantKind:   mcvisor.EventLogin,
			wantPlayer: "Steve",
		},
		{
			name:     "generic",
			line:     "[10:00:00] [Server thread/INFO]: Saving chunks",
			wantKind: mcvisor.EventGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := p.Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ev.Kind)
			assert.Equal(t, tt.wantPlayer, ev.Player)
			assert.Equal(t, tt.wantKiller, ev.Killer)
			assert.Equal(t, tt.wantText, ev.Text)
		})
	}
}

func TestNewParser_InvalidRegex(t *testing.T) {
	pf, err := pattern.Load("testdata/invalid_regex.yaml")
	require.NoError(t, err)

	_, err = pattern.NewParser(pf)
	require.Error(t, err)

	var patErr *pattern.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "broken", patErr.ID)
	assert.Equal(t, "regex", patErr.Field)

	var syntaxErr *syntax.Error
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestNewParser_MissingGroup(t *testing.T) {
	_, err := pattern.NewParserFromFile("testdata/missing_group.yaml")
	require.Error(t, err)

	var patErr *pattern.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "whisper", patErr.ID)
	assert.Contains(t, err.Error(), "chat template")
}

func TestNewParser_Nil(t *testing.T) {
	_, err := pattern.NewParser(nil)
	assert.Error(t, err)
}

func TestNewParser_UnrecognizedLine(t *testing.T) {
	p, err := pattern.NewParserFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	_, err = p.Classify("Steve has joined the server")
	assert.ErrorIs(t, err, mcvisor.ErrUnrecognizedFormat)
}
