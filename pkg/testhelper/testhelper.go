package testhelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"sigs.k8s.io/yaml"
)

// EquateErrorMessage compares errors by their messages only, treating two nil
// errors as equal. Errors of different concrete types are compared too.
var EquateErrorMessage = cmp.FilterValues(func(x, y interface{}) bool {
	_, xIsError := x.(error)
	_, yIsError := y.(error)
	return xIsError && yIsError
}, cmp.Comparer(func(x, y interface{}) bool {
	xErr, _ := x.(error)
	yErr, _ := y.(error)
	if xErr == nil || yErr == nil {
		return xErr == nil && yErr == nil
	}
	return xErr.Error() == yErr.Error()
}))

type fixtureOptions struct {
	prefix    string
	extension string
}

type FixtureOption func(*fixtureOptions)

// WithPrefix prepends prefix to the name of the fixture file.
func WithPrefix(prefix string) FixtureOption {
	return func(o *fixtureOptions) {
		o.prefix = prefix
	}
}

// WithExtension replaces the default .yaml extension of the fixture file.
func WithExtension(extension string) FixtureOption {
	return func(o *fixtureOptions) {
		o.extension = extension
	}
}

// CompareWithFixture compares output with testdata/zz_fixture_<test name><extension>.
// Running the tests with UPDATE set rewrites the fixtures instead.
// Values other than []byte and string are compared in their yaml form.
func CompareWithFixture(t *testing.T, output interface{}, opts ...FixtureOption) {
	t.Helper()
	options := &fixtureOptions{extension: ".yaml"}
	for _, opt := range opts {
		opt(options)
	}

	actual := serialize(t, output)
	golden := FixturePath(t, options.prefix+t.Name(), options.extension)
	if os.Getenv("UPDATE") != "" {
		if err := os.WriteFile(golden, actual, 0644); err != nil {
			t.Fatalf("failed to write updated fixture: %v", err)
		}
	}
	expected, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: "Fixture",
		ToFile:   "Current",
		Context:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff != "" {
		t.Errorf("output differs from %s:\n%s\n\nRun the tests with UPDATE=true if the change is expected.", filepath.Base(golden), diff)
	}
}

// FixturePath is where the fixture of the named test is kept.
func FixturePath(t *testing.T, name, extension string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", sanitizeFilename(name)+extension))
	if err != nil {
		t.Fatalf("failed to resolve fixture path: %v", err)
	}
	return path
}

func serialize(t *testing.T, output interface{}) []byte {
	t.Helper()
	switch v := output.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}
	raw, err := yaml.Marshal(output)
	if err != nil {
		t.Fatalf("failed to marshal %T: %v", output, err)
	}
	return raw
}

func sanitizeFilename(s string) string {
	result := strings.Builder{}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '.' || (r >= '0' && r <= '9') {
			_, _ = result.WriteRune(r)
			continue
		}
		if !strings.HasSuffix(result.String(), "_") {
			result.WriteRune('_')
		}
	}
	return "zz_fixture_" + result.String()
}
