package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      Mode
		hasError    bool
	}{
		{description: "unset defaults to server", input: "", expect: ModeServer},
		{description: "server", input: "server", expect: ModeServer},
		{description: "proxy", input: "proxy", expect: ModeProxy},
		{description: "case and whitespace tolerant", input: "  Proxy ", expect: ModeProxy},
		{description: "unknown value", input: "relay", hasError: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseMode(testCase.input)
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestOptions_Validate(t *testing.T) {
	testCases := []struct {
		description string
		options     Options
		hasError    bool
	}{
		{
			description: "server mode without upstreams",
			options:     Options{},
		},
		{
			description: "proxy mode requires upstream",
			options:     Options{Mode: "proxy"},
			hasError:    true,
		},
		{
			description: "proxy mode with stdio upstream",
			options:     Options{Mode: "proxy", Upstreams: []string{"stdio:mcp-tools --workspace /tmp"}},
		},
		{
			description: "proxy mode with malformed upstream",
			options:     Options{Mode: "proxy", Upstreams: []string{"ftp://example.com"}},
			hasError:    true,
		},
		{
			description: "invalid mode",
			options:     Options{Mode: "daemon"},
			hasError:    true,
		},
	}
	for _, testCase := range testCases {
		testCase.options.Init()
		err := testCase.options.Validate()
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		assert.Nil(t, err, testCase.description)
	}
}

func TestOptions_Init(t *testing.T) {
	options := &Options{}
	options.Init()
	assert.Equal(t, "mcpd", options.Name)
	assert.Equal(t, 30, options.TimeoutSeconds)
	assert.Nil(t, options.Validate())
	assert.Equal(t, ModeServer, options.ResolvedMode())
}
