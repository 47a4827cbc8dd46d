package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rendered(seconds int64) string {
	return time.Unix(seconds, 0).Format(dateLayout)
}

func TestFormatRewritesTrailingTimestamp(t *testing.T) {
	out := Format([]string{"Product registered: batch-9 at 1700000000"})

	require.Len(t, out, 1)
	assert.Equal(t, "Product registered: batch-9 at "+rendered(1700000000), out[0])
}

func TestFormatLeavesEventsWithoutTimestamp(t *testing.T) {
	out := Format([]string{"no timestamp here"})
	assert.Equal(t, []string{"no timestamp here"}, out)
}

func TestFormatOnlyRewritesTrailingOccurrence(t *testing.T) {
	out := Format([]string{"received at 1600000000 then stored at 1700000000"})

	require.Len(t, out, 1)
	assert.Equal(t, "received at 1600000000 then stored at "+rendered(1700000000), out[0])
}

func TestFormatPreservesOrder(t *testing.T) {
	events := []string{
		"Product registered: batch-1 at 1700000000",
		"Ownership transferred at 1700001000",
		"no timestamp here",
	}

	out := Format(events)

	require.Len(t, out, 3)
	assert.Equal(t, "Product registered: batch-1 at "+rendered(1700000000), out[0])
	assert.Equal(t, "Ownership transferred at "+rendered(1700001000), out[1])
	assert.Equal(t, "no timestamp here", out[2])
}

func TestFormatIgnoresNonNumericSuffix(t *testing.T) {
	out := Format([]string{"delivered at warehouse"})
	assert.Equal(t, []string{"delivered at warehouse"}, out)
}

func TestFormatEmpty(t *testing.T) {
	assert.Empty(t, Format(nil))
	assert.Equal(t, []string{""}, Format([]string{""}))
}
