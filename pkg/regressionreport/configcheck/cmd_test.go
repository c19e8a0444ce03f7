package configcheck

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reportconfig"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		name     string
		config   string
		print    bool
		expected []string
	}{
		{
			name:   "built-in configuration",
			config: "",
			expected: []string{
				"Build server: http://172.31.8.12:8080\n",
				"History length: 30\n",
				`Sheet "GL Regression": GL Regression/GL Regression Build rerun by GL Regression Test Fail`,
				`Sheet "Navigation": `,
			},
		},
		{
			name:   "configuration file",
			config: "../reportconfig/testdata/valid.yaml",
			print:  true,
			expected: []string{
				"Build server: http://jenkins.example.com:8080\n",
				"History length: 10\n",
				`Sheet "Navigation": 2 jobs of `,
				"sheetTitle: Navigation",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckFlags()
			f.Config.ConfigFile = tc.config
			f.Print = tc.print
			require.NoError(t, f.Validate())
			o, err := f.ToOptions(context.Background())
			require.NoError(t, err)

			out := &bytes.Buffer{}
			o.out = out
			require.NoError(t, o.Run(context.Background()))
			for _, expected := range tc.expected {
				assert.Contains(t, out.String(), expected)
			}
			if !tc.print {
				assert.NotContains(t, out.String(), "sheetTitle:")
			}
		})
	}
}

func TestToOptionsRejectsInvalidConfig(t *testing.T) {
	f := newCheckFlags()
	f.Config.ConfigFile = "../reportconfig/testdata/unknown_field.yaml"
	_, err := f.ToOptions(context.Background())
	assert.Error(t, err)

	f.Config.ConfigFile = "../reportconfig/testdata/missing.yaml"
	_, err = f.ToOptions(context.Background())
	assert.Error(t, err)
}

func TestRunPrintsLoadableConfig(t *testing.T) {
	out := &bytes.Buffer{}
	o := &Options{config: reportconfig.DefaultConfig(), print: true, out: out}
	require.NoError(t, o.Run(context.Background()))

	printed := out.Bytes()
	start := bytes.Index(printed, []byte("baseURL:"))
	require.NotEqual(t, -1, start)
	parsed, err := reportconfig.ParseConfig(printed[start:])
	require.NoError(t, err)
	assert.Equal(t, reportconfig.DefaultConfig(), parsed)
}
