package interactive

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

const endMarker = "done"

var errNoInput = errors.New("no input before 'done'")

// formatDevice renders one selection list line.
func formatDevice(i int, d device.Descriptor) string {
	return fmt.Sprintf("[%d]: %s", i, d)
}

// describeError prefixes err with where it was detected.
func describeError(err error) string {
	switch sdk.Classify(err) {
	case sdk.OutcomeRejected:
		return "request rejected: " + err.Error()
	case sdk.OutcomeFailed:
		return "failed on device: " + err.Error()
	case sdk.OutcomeOK:
		return "ok"
	default:
		return "error: " + err.Error()
	}
}

func formatResource(r sdk.Resource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  href: %s\n", r.Href)
	if len(r.Types) > 0 {
		fmt.Fprintf(&b, "  rt: %s\n", strings.Join(r.Types, ", "))
	}
	if len(r.Interfaces) > 0 {
		fmt.Fprintf(&b, "  if: %s\n", strings.Join(r.Interfaces, ", "))
	}
	for _, ep := range r.Endpoints {
		fmt.Fprintf(&b, "  endpoint: %s\n", ep)
	}
	return b.String()
}

func formatCredentials(creds []cred.Credential) string {
	if len(creds) == 0 {
		return "No credentials\n"
	}
	var b bytes.Buffer
	b.WriteString("\n/oic/sec/cred:\n")
	for _, c := range creds {
		c.Display(&b)
	}
	return b.String()
}

func formatACL(l *acl.ACL) string {
	if l == nil {
		return "No ACL\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n/oic/sec/acl2 (rowneruuid %s):\n", l.ResourceOwner)
	if len(l.Entries) == 0 {
		b.WriteString("  no entries\n")
	}
	for i := range l.Entries {
		fmt.Fprintf(&b, "  %s\n", l.Entries[i].String())
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// collectUntilDone reads lines from next until one equals "done" and
// returns them newline-joined.
func collectUntilDone(next func() (string, error)) ([]byte, error) {
	var b bytes.Buffer
	for {
		line, err := next()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == endMarker {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return nil, errNoInput
	}
	return b.Bytes(), nil
}
