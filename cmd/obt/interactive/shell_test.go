package interactive

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// syncBuffer is a bytes.Buffer safe for completion goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestShell(t *testing.T, out io.Writer) *Shell {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	return newShell(nil, out)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"0", cmdMenu, true},
		{"8", cmdJustWorks, true},
		{"23", cmdRoleCert, true},
		{"24", 0, false},
		{"94", 0, false},
		{"95", cmdShowManufacturerCA, true},
		{"99", cmdExit, true},
		{"100", 0, false},
		{"-1", 0, false},
		{"discover-unowned", cmdDiscoverUnowned, true},
		{"Reset-Tool", cmdResetTool, true},
		{"exit", cmdExit, true},
		{"teleport", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseChoice(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMenuListsEveryCommand(t *testing.T) {
	for n := cmdMenu; n <= cmdRoleCert; n++ {
		assert.Contains(t, menuText, "["+itoa(n)+"] ")
	}
	for _, n := range []int{cmdInstallTrustAnchor, cmdResetDevice, cmdResetTool, cmdExit} {
		assert.Contains(t, menuText, "["+itoa(n)+"] ")
	}
}

func itoa(n int) string {
	return joinInts([]int{n})
}

func TestFormatDevice(t *testing.T) {
	d := device.Descriptor{
		ID:   device.MustParseID("11111111-1111-4111-8111-111111111111"),
		Name: "Lamp",
	}
	assert.Equal(t, "[3]: 11111111-1111-4111-8111-111111111111 - Lamp", formatDevice(3, d))
}

func TestDescribeError(t *testing.T) {
	rejected := sdk.Reject("otm.justworks", sdk.CodeBusy)
	failed := result.Fail("otm.justworks", device.NewID(), result.CodeUnauthorized, "")
	local := device.ErrInvalidSelection

	assert.True(t, strings.HasPrefix(describeError(rejected), "request rejected: "))
	assert.True(t, strings.HasPrefix(describeError(failed), "failed on device: "))
	assert.True(t, strings.HasPrefix(describeError(local), "error: "))
}

func TestCollectUntilDone(t *testing.T) {
	lines := []string{"-----BEGIN CERTIFICATE-----", "MIIB", "-----END CERTIFICATE-----", " done ", "ignored"}
	i := 0
	next := func() (string, error) {
		l := lines[i]
		i++
		return l, nil
	}

	data, err := collectUntilDone(next)
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n", string(data))
	assert.Equal(t, 4, i)
}

func TestCollectUntilDoneErrors(t *testing.T) {
	_, err := collectUntilDone(func() (string, error) { return "done", nil })
	assert.ErrorIs(t, err, errNoInput)

	_, err = collectUntilDone(func() (string, error) { return "", errAborted })
	assert.ErrorIs(t, err, errAborted)
}

func TestFormatCredentialsAndACL(t *testing.T) {
	assert.Equal(t, "No credentials\n", formatCredentials(nil))
	out := formatCredentials([]cred.Credential{{ID: 4, Subject: device.NewID()}})
	assert.Contains(t, out, "credid: 4")

	owner := device.NewID()
	l := &acl.ACL{ResourceOwner: owner}
	assert.Contains(t, formatACL(l), "no entries")
	ace := acl.AuthCryptWildcardACE(acl.PermRetrieve)
	ace.ID = 7
	l.Entries = append(l.Entries, *ace)
	assert.Contains(t, formatACL(l), "aceid=7")
	assert.Contains(t, formatACL(l), owner.String())
	assert.Equal(t, "No ACL\n", formatACL(nil))
}

func TestFormatResource(t *testing.T) {
	out := formatResource(sdk.Resource{
		Href:       "/a/light",
		Types:      []string{"core.light"},
		Interfaces: []string{"oic.if.rw", "oic.if.baseline"},
		Endpoints:  []device.Endpoint{{Scheme: "coaps", Host: "fe80::1", Port: 5684}},
	})
	assert.Contains(t, out, "href: /a/light")
	assert.Contains(t, out, "if: oic.if.rw, oic.if.baseline")
	assert.Contains(t, out, "coaps://[fe80::1]:5684")
}

func TestTrackReportsCompletion(t *testing.T) {
	var out syncBuffer
	s := newTestShell(t, &out)

	ok := result.NewPending[sdk.Done]()
	var got bool
	var mu sync.Mutex
	track(s, "Just-Works OTM", 3, ok, func(sdk.Done) {
		mu.Lock()
		got = true
		mu.Unlock()
	})
	assert.Contains(t, out.String(), "request issued (handle 3)")
	ok.Resolve(result.OK(sdk.Done{}))

	bad := result.NewPending[sdk.Done]()
	track(s, "Random PIN OTM", 4, bad, nil)
	bad.Resolve(result.Err[sdk.Done](result.Fail("otm.randompin", device.NewID(), result.CodeVerifyFailed, "")))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Just-Works OTM succeeded") &&
			strings.Contains(out.String(), "Random PIN OTM failed: failed on device")
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.True(t, got)
	mu.Unlock()
}

func TestShowTransition(t *testing.T) {
	var out syncBuffer
	s := newTestShell(t, &out)
	d := device.Descriptor{ID: device.NewID(), Name: "Lamp"}

	s.showTransition(device.Transition{Change: device.ChangeAdded, Collection: device.Unowned, Device: d})
	s.showTransition(device.Transition{Change: device.ChangeIgnored, Collection: device.Unowned, Device: d})
	s.showTransition(device.Transition{Change: device.ChangePromoted, Collection: device.Owned, Device: d})

	got := out.String()
	assert.Contains(t, got, "Discovered unowned device: "+d.String())
	assert.Contains(t, got, "Now owned: "+d.String())
	assert.Equal(t, 2, strings.Count(got, "\n"))
}

func TestFailfAborted(t *testing.T) {
	var out syncBuffer
	s := newTestShell(t, &out)
	s.failf("Provision ACE", errAborted)
	s.failf("Provision ACE", errors.New("boom"))
	assert.Contains(t, out.String(), "Provision ACE: aborted")
	assert.Contains(t, out.String(), "Provision ACE: error: boom")
}
