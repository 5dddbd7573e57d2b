package cmdutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputCapturesStdout(t *testing.T) {
	r := NewExecRunner()

	out := r.Output(context.Background(), "go", "version")
	assert.Contains(t, out, "go version")
}

func TestOutputMissingToolReturnsEmpty(t *testing.T) {
	r := NewExecRunner()

	out := r.Output(context.Background(), "webpick-no-such-tool-xyz")
	assert.Empty(t, out)
}

func TestOutputNonZeroExitReturnsEmpty(t *testing.T) {
	r := NewExecRunner()

	// "go bogus-subcommand" exits non-zero but the tool itself exists.
	out := r.Output(context.Background(), "go", "bogus-subcommand")
	assert.Empty(t, out)
}

func TestOutputTimeout(t *testing.T) {
	r := NewExecRunner(WithTimeout(50 * time.Millisecond))

	start := time.Now()
	out := r.Output(context.Background(), "sleep", "5")
	if strings.Contains(out, "sleep") {
		t.Skip("sleep not available on this platform")
	}
	assert.Empty(t, out)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestBreakerTripsAfterRepeatedStartFailures(t *testing.T) {
	r := NewExecRunner()

	for i := 0; i < 5; i++ {
		r.Output(context.Background(), "webpick-no-such-tool-xyz")
	}

	breaker := r.breakerFor("webpick-no-such-tool-xyz")
	assert.NotEqual(t, "closed", breaker.State().String())
}

func TestNonZeroExitDoesNotTripBreaker(t *testing.T) {
	r := NewExecRunner()

	for i := 0; i < 5; i++ {
		r.Output(context.Background(), "go", "bogus-subcommand")
	}

	breaker := r.breakerFor("go")
	assert.Equal(t, "closed", breaker.State().String())
}

func TestLookPath(t *testing.T) {
	r := NewExecRunner()

	require.NotEmpty(t, r.LookPath("go"))
	assert.Empty(t, r.LookPath("webpick-no-such-tool-xyz"))
}

func TestStubRunnerRecordsCalls(t *testing.T) {
	stub := &StubRunner{Responses: map[string]string{
		"xdg-settings get default-web-browser": "firefox.desktop\n",
	}}

	out := stub.Output(context.Background(), "xdg-settings", "get", "default-web-browser")
	assert.Equal(t, "firefox.desktop\n", out)
	assert.Empty(t, stub.Output(context.Background(), "reg", "query"))
	assert.True(t, stub.Called("xdg-settings get"))
	assert.Len(t, stub.Calls(), 2)
}
