package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTelegram(t *testing.T) {
	before := testutil.ToFloat64(telegramRequests.WithLabelValues("getFile", "ok"))

	ObserveTelegram("getFile", "ok", 150*time.Millisecond)
	ObserveTelegram("getFile", "ok", 90*time.Millisecond)

	after := testutil.ToFloat64(telegramRequests.WithLabelValues("getFile", "ok"))
	assert.Equal(t, before+2, after)
}

func TestMustRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		MustRegister()
		MustRegister()
	})
}
