package notifysvc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/apar/core/assessment"
	logsvc "github.com/trezcool/apar/services/logger"
)

func TestInbox(t *testing.T) {
	inbox := NewInbox()
	assert.Equal(t, []assessment.Notice{}, inbox.Drain("a1"))

	ok := assessment.Notice{Level: assessment.LevelSuccess, Message: "Data submitted successfully"}
	inbox.Notify("a1", ok)
	inbox.Notify("a2", ok)
	assert.Equal(t, []assessment.Notice{ok}, inbox.Drain("a1"))
	assert.Empty(t, inbox.Drain("a1"))

	for i := 0; i < inboxSize+5; i++ {
		inbox.Notify("a3", assessment.Notice{Level: assessment.LevelWarning, Message: fmt.Sprint(i)})
	}
	ns := inbox.Drain("a3")
	assert.Len(t, ns, inboxSize)
	assert.Equal(t, "5", ns[0].Message)

	inbox.Forget("a2")
	assert.Empty(t, inbox.Drain("a2"))
}

func TestMulti(t *testing.T) {
	logger := logsvc.NewLoggerMock()
	inbox := NewInbox()
	notifier := Multi{NewLogNotifier(logger), inbox}

	notifier.Notify("a1", assessment.Notice{Level: assessment.LevelError, Message: "Failed to submit"})
	notifier.Notify("a1", assessment.Notice{Level: assessment.LevelWarning, Message: "Please fill in all required fields"})

	assert.Equal(t, []string{
		"ERROR: Failed to submit map[assessment:a1]",
		"WARN: Please fill in all required fields map[assessment:a1]",
	}, logger.Entries())
	assert.Len(t, inbox.Drain("a1"), 2)
}
